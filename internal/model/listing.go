// Package model はドメインモデルを定義する。
package model

import (
	"fmt"
	"slices"
	"time"
)

// GameVersion はゲームのバージョン（リテール/クラシック）を表す。
type GameVersion string

const (
	GameVersionRetail  GameVersion = "retail"
	GameVersionClassic GameVersion = "classic"
)

// Valid は定義済みのゲームバージョンかどうかを返す。
func (v GameVersion) Valid() bool {
	return v == GameVersionRetail || v == GameVersionClassic
}

// Expansion は拡張パックの識別子を表す。
type Expansion string

const (
	ExpansionTWW     Expansion = "tww"
	ExpansionDF      Expansion = "df"
	ExpansionSL      Expansion = "sl"
	ExpansionWotLK   Expansion = "wotlk"
	ExpansionTBC     Expansion = "tbc"
	ExpansionVanilla Expansion = "vanilla"
)

// Valid は定義済みの拡張パックかどうかを返す。
func (e Expansion) Valid() bool {
	switch e {
	case ExpansionTWW, ExpansionDF, ExpansionSL, ExpansionWotLK, ExpansionTBC, ExpansionVanilla:
		return true
	}
	return false
}

// Difficulty はレイドの難易度を表す。
// リテールは lfr/normal/heroic/mythic、クラシックは 10n/10h/25n/25h/flex を使う。
type Difficulty string

const (
	DifficultyLFR    Difficulty = "lfr"
	DifficultyNormal Difficulty = "normal"
	DifficultyHeroic Difficulty = "heroic"
	DifficultyMythic Difficulty = "mythic"
	Difficulty10N    Difficulty = "10n"
	Difficulty10H    Difficulty = "10h"
	Difficulty25N    Difficulty = "25n"
	Difficulty25H    Difficulty = "25h"
	DifficultyFlex   Difficulty = "flex"
)

// Valid は定義済みの難易度かどうかを返す。
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLFR, DifficultyNormal, DifficultyHeroic, DifficultyMythic,
		Difficulty10N, Difficulty10H, Difficulty25N, Difficulty25H, DifficultyFlex:
		return true
	}
	return false
}

// Faction は陣営を表す。
type Faction string

const (
	FactionAlliance Faction = "alliance"
	FactionHorde    Faction = "horde"
)

// Valid は定義済みの陣営かどうかを返す。
func (f Faction) Valid() bool {
	return f == FactionAlliance || f == FactionHorde
}

// Role はパーティ内のロールを表す。
type Role string

const (
	RoleTank   Role = "tank"
	RoleHealer Role = "healer"
	RoleDPS    Role = "dps"
)

// Valid は定義済みのロールかどうかを返す。
func (r Role) Valid() bool {
	return r == RoleTank || r == RoleHealer || r == RoleDPS
}

// WoWClass はキャラクタークラスを表す。
type WoWClass string

const (
	ClassWarrior     WoWClass = "warrior"
	ClassPaladin     WoWClass = "paladin"
	ClassHunter      WoWClass = "hunter"
	ClassRogue       WoWClass = "rogue"
	ClassPriest      WoWClass = "priest"
	ClassShaman      WoWClass = "shaman"
	ClassMage        WoWClass = "mage"
	ClassWarlock     WoWClass = "warlock"
	ClassMonk        WoWClass = "monk"
	ClassDruid       WoWClass = "druid"
	ClassDemonHunter WoWClass = "demon_hunter"
	ClassDeathKnight WoWClass = "death_knight"
	ClassEvoker      WoWClass = "evoker"
)

// PosterTier は募集者の信頼度区分を表す。
type PosterTier string

const (
	PosterTierPremium PosterTier = "premium"
	PosterTierNormal  PosterTier = "normal"
	PosterTierLowCut  PosterTier = "low_cut"
)

// Valid は定義済みの区分かどうかを返す。
func (t PosterTier) Valid() bool {
	return t == PosterTierPremium || t == PosterTierNormal || t == PosterTierLowCut
}

// RiskLevel は募集者のリスク評価を表す。
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Poster は募集の投稿者（オーガナイザー）を表す。
type Poster struct {
	ID       string
	Name     string
	Avatar   string
	Credit   float64
	Karma    int
	IsOnline bool
	Tier     PosterTier
}

// RoleSlot はロールごとの枠（現在数/上限）を表す。
type RoleSlot struct {
	Role    Role
	Current int
	Max     int
}

// Open は空き枠数を返す。
func (s RoleSlot) Open() int {
	if s.Current >= s.Max {
		return 0
	}
	return s.Max - s.Current
}

// ClassSet はロールに参加可能なクラスの集合を表す。
// Any が true の場合は全クラスを許可し、Classes は無視される。
type ClassSet struct {
	Any     bool
	Classes []WoWClass
}

// Allows は指定クラスが参加可能かどうかを返す。
func (c ClassSet) Allows(class WoWClass) bool {
	if c.Any {
		return true
	}
	for _, allowed := range c.Classes {
		if allowed == class {
			return true
		}
	}
	return false
}

// EligibleClasses はロールごとの参加可能クラスを表す。
type EligibleClasses struct {
	Tank   ClassSet
	Healer ClassSet
	DPS    ClassSet
}

// ForRole はロールに対応するClassSetを返す。未知のロールは空集合。
func (e EligibleClasses) ForRole(role Role) ClassSet {
	switch role {
	case RoleTank:
		return e.Tank
	case RoleHealer:
		return e.Healer
	case RoleDPS:
		return e.DPS
	}
	return ClassSet{}
}

// Credibility は募集者のレビュー集計を表す。
type Credibility struct {
	TotalReviews  int
	AverageRating float64 // 0〜10
	KarmaChange   float64
	RiskLevel     RiskLevel
}

// Requirements は購入者の参加条件を表す。
type Requirements struct {
	MinIOScore int
	MinIlvl    int
	MinRating  float64
	MinKarma   int
}

// GroupMember は既に参加しているメンバーを表す。
type GroupMember struct {
	ID     string
	Name   string
	Class  WoWClass
	Role   Role
	Avatar string
}

// BuyerInfo は購入者の参加状況を表す。
type BuyerInfo struct {
	WillParticipate bool
	Count           int
}

// Listing はレイド募集（予約可能な1回分のセッション）を表す。
// カタログ読み込み後はイミュータブルとして扱う。
type Listing struct {
	ID string

	GameVersion GameVersion
	Expansion   Expansion
	RaidName    string
	Difficulty  Difficulty

	Price              int64
	MarketAveragePrice int64

	Faction       Faction
	Server        string
	ScheduledTime *time.Time // 未設定の募集もある
	PostedAt      time.Time

	Poster Poster

	Signups        int
	MaxBuyers      int
	CurrentBuyers  int
	RoleSlots      []RoleSlot
	RolesNeeded    []Role
	ClassesAllowed ClassSet

	EligibleClasses EligibleClasses
	Requirements    Requirements
	Credibility     Credibility

	NumberOfRuns int
	IsTimed      bool
	GroupMembers []GroupMember
	BuyerInfo    BuyerInfo
	AvgPayTime   string
	PayLimit     string
	Note         string

	// SelectedBosses がnilまたは空の場合はフルクリアを意味する。
	SelectedBosses []string

	IsSaved bool
}

// NeedsRole は募集が指定ロールを必要としているかどうかを返す。
func (l Listing) NeedsRole(role Role) bool {
	for _, r := range l.RolesNeeded {
		if r == role {
			return true
		}
	}
	return false
}

// Clone はスライスとポインタのフィールドまで複製したコピーを返す。
func (l Listing) Clone() Listing {
	c := l
	if l.ScheduledTime != nil {
		t := *l.ScheduledTime
		c.ScheduledTime = &t
	}
	c.RoleSlots = slices.Clone(l.RoleSlots)
	c.RolesNeeded = slices.Clone(l.RolesNeeded)
	c.ClassesAllowed = l.ClassesAllowed.clone()
	c.EligibleClasses = EligibleClasses{
		Tank:   l.EligibleClasses.Tank.clone(),
		Healer: l.EligibleClasses.Healer.clone(),
		DPS:    l.EligibleClasses.DPS.clone(),
	}
	c.GroupMembers = slices.Clone(l.GroupMembers)
	c.SelectedBosses = slices.Clone(l.SelectedBosses)
	return c
}

func (c ClassSet) clone() ClassSet {
	return ClassSet{Any: c.Any, Classes: slices.Clone(c.Classes)}
}

// Validate はListingの不変条件を検証する。
// knownBosses はレイド名に対応するボス一覧で、SelectedBossesの部分集合チェックに使う。
func (l Listing) Validate(now time.Time, knownBosses []string) error {
	if l.ID == "" {
		return fmt.Errorf("listing id is empty")
	}
	if l.Price < 0 || l.MarketAveragePrice < 0 {
		return fmt.Errorf("listing %s: negative price", l.ID)
	}
	if l.CurrentBuyers < 0 || l.CurrentBuyers > l.MaxBuyers {
		return fmt.Errorf("listing %s: current buyers %d out of range [0, %d]", l.ID, l.CurrentBuyers, l.MaxBuyers)
	}
	for _, slot := range l.RoleSlots {
		if slot.Current < 0 || slot.Current > slot.Max {
			return fmt.Errorf("listing %s: role slot %s %d/%d out of range", l.ID, slot.Role, slot.Current, slot.Max)
		}
	}
	if l.PostedAt.After(now) {
		return fmt.Errorf("listing %s: posted_at is in the future", l.ID)
	}
	if len(l.SelectedBosses) > 0 {
		known := make(map[string]struct{}, len(knownBosses))
		for _, b := range knownBosses {
			known[b] = struct{}{}
		}
		for _, b := range l.SelectedBosses {
			if _, ok := known[b]; !ok {
				return fmt.Errorf("listing %s: boss %q is not part of %s", l.ID, b, l.RaidName)
			}
		}
	}
	return nil
}
