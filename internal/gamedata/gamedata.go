// Package gamedata はゲームコンテンツの静的な参照テーブル
// （拡張パックごとのレイド一覧、レイドごとのボス一覧、難易度のラベルと色）を提供する。
//
// テーブルはパッケージ初期化時に構築され、以降は読み取り専用として扱う。
// 参照関数はすべてコピーを返し、未知のキーに対しては空のスライスまたはゼロ値を返す。
package gamedata

import (
	"slices"

	"github.com/hitoshi/raidboard/internal/model"
)

// retailExpansions はリテール版の拡張パック（新しい順）。
var retailExpansions = []model.Expansion{
	model.ExpansionTWW,
	model.ExpansionDF,
	model.ExpansionSL,
}

// classicExpansions はクラシック版の拡張パック（新しい順）。
var classicExpansions = []model.Expansion{
	model.ExpansionWotLK,
	model.ExpansionTBC,
	model.ExpansionVanilla,
}

var expansionLabels = map[model.Expansion]string{
	model.ExpansionTWW:     "The War Within",
	model.ExpansionDF:      "Dragonflight",
	model.ExpansionSL:      "Shadowlands",
	model.ExpansionWotLK:   "Wrath of the Lich King",
	model.ExpansionTBC:     "The Burning Crusade",
	model.ExpansionVanilla: "Vanilla",
}

var raidsByExpansion = map[model.Expansion][]string{
	model.ExpansionTWW: {
		"Nerub-ar Palace",
		"Liberation of Undermine",
		"Manaforge Omega",
	},
	model.ExpansionDF: {
		"Amirdrassil, the Dream's Hope",
		"Aberrus, the Shadowed Crucible",
		"Vault of the Incarnates",
	},
	model.ExpansionSL: {
		"Sepulcher of the First Ones",
		"Sanctum of Domination",
		"Castle Nathria",
	},
	model.ExpansionWotLK: {
		"Icecrown Citadel",
		"Trial of the Crusader",
		"Ulduar",
		"Naxxramas",
	},
	model.ExpansionTBC: {
		"Sunwell Plateau",
		"Black Temple",
		"Serpentshrine Cavern",
		"Karazhan",
	},
	model.ExpansionVanilla: {
		"Naxxramas",
		"Temple of Ahn'Qiraj",
		"Blackwing Lair",
		"Molten Core",
	},
}

var retailDifficulties = []model.Difficulty{
	model.DifficultyLFR,
	model.DifficultyNormal,
	model.DifficultyHeroic,
	model.DifficultyMythic,
}

var classicDifficulties = []model.Difficulty{
	model.Difficulty10N,
	model.Difficulty10H,
	model.Difficulty25N,
	model.Difficulty25H,
	model.DifficultyFlex,
}

var difficultyLabels = map[model.Difficulty]string{
	model.DifficultyLFR:    "Looking for Raid",
	model.DifficultyNormal: "Normal",
	model.DifficultyHeroic: "Heroic",
	model.DifficultyMythic: "Mythic",
	model.Difficulty10N:    "10-Man Normal",
	model.Difficulty10H:    "10-Man Heroic",
	model.Difficulty25N:    "25-Man Normal",
	model.Difficulty25H:    "25-Man Heroic",
	model.DifficultyFlex:   "Flexible",
}

// Color は難易度バッジの表示色を表す。
type Color string

const (
	ColorPrimary   Color = "primary"
	ColorSecondary Color = "secondary"
	ColorError     Color = "error"
	ColorWarning   Color = "warning"
	ColorInfo      Color = "info"
	ColorSuccess   Color = "success"
)

var difficultyColors = map[model.Difficulty]Color{
	model.DifficultyLFR:    ColorInfo,
	model.DifficultyNormal: ColorSuccess,
	model.DifficultyHeroic: ColorWarning,
	model.DifficultyMythic: ColorError,
	model.Difficulty10N:    ColorSuccess,
	model.Difficulty10H:    ColorWarning,
	model.Difficulty25N:    ColorInfo,
	model.Difficulty25H:    ColorError,
	model.DifficultyFlex:   ColorSecondary,
}

// Expansions はゲームバージョンに属する拡張パックを返す。
func Expansions(version model.GameVersion) []model.Expansion {
	switch version {
	case model.GameVersionRetail:
		return slices.Clone(retailExpansions)
	case model.GameVersionClassic:
		return slices.Clone(classicExpansions)
	}
	return []model.Expansion{}
}

// AllExpansions はリテール、クラシックの順で全拡張パックを返す。
func AllExpansions() []model.Expansion {
	return slices.Concat(retailExpansions, classicExpansions)
}

// VersionOf は拡張パックが属するゲームバージョンを返す。
func VersionOf(exp model.Expansion) (model.GameVersion, bool) {
	if slices.Contains(retailExpansions, exp) {
		return model.GameVersionRetail, true
	}
	if slices.Contains(classicExpansions, exp) {
		return model.GameVersionClassic, true
	}
	return "", false
}

// ExpansionLabel は拡張パックの表示名を返す。未知の場合は識別子をそのまま返す。
func ExpansionLabel(exp model.Expansion) string {
	if label, ok := expansionLabels[exp]; ok {
		return label
	}
	return string(exp)
}

// RaidsForExpansion は拡張パックのレイド名一覧を返す。
func RaidsForExpansion(exp model.Expansion) []string {
	return slices.Clone(raidsByExpansion[exp])
}

// RaidsForVersion はゲームバージョンに属する全レイド名を拡張パック順に返す。
func RaidsForVersion(version model.GameVersion) []string {
	var raids []string
	for _, exp := range Expansions(version) {
		raids = append(raids, raidsByExpansion[exp]...)
	}
	if raids == nil {
		return []string{}
	}
	return raids
}

// AllRaids は全レイド名を返す。複数の拡張パックに同名のレイドがある場合も重複は除かない。
func AllRaids() []string {
	return slices.Concat(
		RaidsForVersion(model.GameVersionRetail),
		RaidsForVersion(model.GameVersionClassic),
	)
}

// Difficulties はゲームバージョンで選択可能な難易度を返す。
func Difficulties(version model.GameVersion) []model.Difficulty {
	switch version {
	case model.GameVersionRetail:
		return slices.Clone(retailDifficulties)
	case model.GameVersionClassic:
		return slices.Clone(classicDifficulties)
	}
	return []model.Difficulty{}
}

// AllDifficulties はバージョン未指定時の難易度一覧（重複なし）を返す。
func AllDifficulties() []model.Difficulty {
	all := slices.Concat(retailDifficulties, classicDifficulties)
	seen := make(map[model.Difficulty]struct{}, len(all))
	result := make([]model.Difficulty, 0, len(all))
	for _, d := range all {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		result = append(result, d)
	}
	return result
}

// DifficultyLabel は難易度の表示名を返す。未知の場合は識別子をそのまま返す。
func DifficultyLabel(d model.Difficulty) string {
	if label, ok := difficultyLabels[d]; ok {
		return label
	}
	return string(d)
}

// DifficultyColor は難易度の表示色を返す。未知の場合はprimary。
func DifficultyColor(d model.Difficulty) Color {
	if c, ok := difficultyColors[d]; ok {
		return c
	}
	return ColorPrimary
}
