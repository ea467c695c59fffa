package board

import (
	"context"

	"github.com/hitoshi/raidboard/internal/gamedata"
	"github.com/hitoshi/raidboard/internal/listing"
	"github.com/hitoshi/raidboard/internal/model"
)

// FilterOptions はフィルタパネルの選択肢を表す。
// 拡張パック・レイド・難易度は選択中のバージョン/拡張パックに応じて絞られる。
type FilterOptions struct {
	GameVersions []model.GameVersion
	Expansions   []model.Expansion
	Raids        []string
	Difficulties []model.Difficulty
	Factions     []model.Faction
	Roles        []model.Role
	PosterTiers  []model.PosterTier
	BossClear    []model.BossClearType
	SortOptions  []model.SortOption
	Windows      []listing.QuickWindowKind

	// MatchCount は現在のフィルタに一致する募集数。
	MatchCount int
	// PriceMin/PriceMax は一致した募集の価格範囲。一致なしの場合は0。
	PriceMin int64
	PriceMax int64
}

// Options は現在のフィルタに対する選択肢と、一致件数・価格範囲を返す。
func (s *Service) Options(ctx context.Context, f model.ListingFilter) (*FilterOptions, error) {
	ctx, _ = s.pinReferenceTime(ctx)
	listings, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	opts := &FilterOptions{
		GameVersions: []model.GameVersion{model.GameVersionRetail, model.GameVersionClassic},
		Factions:     []model.Faction{model.FactionAlliance, model.FactionHorde},
		Roles:        []model.Role{model.RoleTank, model.RoleHealer, model.RoleDPS},
		PosterTiers:  []model.PosterTier{model.PosterTierPremium, model.PosterTierNormal, model.PosterTierLowCut},
		BossClear:    []model.BossClearType{model.BossClearFull, model.BossClearPartial},
		SortOptions:  model.SortOptions(),
		Windows:      []listing.QuickWindowKind{listing.WindowToday, listing.WindowWeek, listing.WindowWeekend},
	}

	switch {
	case f.GameVersion != nil:
		opts.Expansions = gamedata.Expansions(*f.GameVersion)
		opts.Difficulties = gamedata.Difficulties(*f.GameVersion)
	default:
		opts.Expansions = gamedata.AllExpansions()
		opts.Difficulties = gamedata.AllDifficulties()
	}

	switch {
	case f.Expansion != nil:
		opts.Raids = gamedata.RaidsForExpansion(*f.Expansion)
	case f.GameVersion != nil:
		opts.Raids = unique(gamedata.RaidsForVersion(*f.GameVersion))
	default:
		opts.Raids = unique(gamedata.AllRaids())
	}

	matched := listing.Filter(listings, f)
	opts.MatchCount = len(matched)
	for i, l := range matched {
		if i == 0 || l.Price < opts.PriceMin {
			opts.PriceMin = l.Price
		}
		if i == 0 || l.Price > opts.PriceMax {
			opts.PriceMax = l.Price
		}
	}

	return opts, nil
}

// Dictionaries は表示用の静的な参照データを表す。
type Dictionaries struct {
	// ExpansionOrder/DifficultyOrder はマップのキーの表示順。
	ExpansionOrder    []model.Expansion
	DifficultyOrder   []model.Difficulty
	ExpansionLabels   map[model.Expansion]string
	ExpansionVersions map[model.Expansion]model.GameVersion
	RaidsByExpansion  map[model.Expansion][]string
	BossesByRaid      map[string][]string
	DifficultyLabels  map[model.Difficulty]string
	DifficultyColors  map[model.Difficulty]gamedata.Color
}

// Dictionaries は拡張パック・レイド・ボス・難易度の参照データを返す。
func (s *Service) Dictionaries() *Dictionaries {
	d := &Dictionaries{
		ExpansionOrder:    gamedata.AllExpansions(),
		DifficultyOrder:   gamedata.AllDifficulties(),
		ExpansionLabels:   make(map[model.Expansion]string),
		ExpansionVersions: make(map[model.Expansion]model.GameVersion),
		RaidsByExpansion:  make(map[model.Expansion][]string),
		BossesByRaid:      gamedata.BossesByRaid(),
		DifficultyLabels:  make(map[model.Difficulty]string),
		DifficultyColors:  make(map[model.Difficulty]gamedata.Color),
	}
	for _, exp := range d.ExpansionOrder {
		d.ExpansionLabels[exp] = gamedata.ExpansionLabel(exp)
		d.RaidsByExpansion[exp] = gamedata.RaidsForExpansion(exp)
		if v, ok := gamedata.VersionOf(exp); ok {
			d.ExpansionVersions[exp] = v
		}
	}
	for _, diff := range d.DifficultyOrder {
		d.DifficultyLabels[diff] = gamedata.DifficultyLabel(diff)
		d.DifficultyColors[diff] = gamedata.DifficultyColor(diff)
	}
	return d
}

// unique は出現順を保ったまま重複を取り除く。
func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
