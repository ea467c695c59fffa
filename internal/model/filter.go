package model

import "time"

// BossClearType はフルクリア/部分クリアのフィルタ種別を表す。
type BossClearType string

const (
	// BossClearFull は全ボスを対象とする募集のみを表示するフィルタ。
	BossClearFull BossClearType = "full"
	// BossClearPartial は一部のボスのみを対象とする募集を表示するフィルタ。
	BossClearPartial BossClearType = "partial"
)

// Valid は定義済みの種別かどうかを返す。
func (b BossClearType) Valid() bool {
	return b == BossClearFull || b == BossClearPartial
}

// ListingFilter は募集一覧の絞り込み条件を表す。
// nilのフィールドは「未指定」であり、ゼロ値（MinPrice=0やIsSaved=false）とは区別される。
// 指定されたフィールドはすべてAND条件で評価する。
type ListingFilter struct {
	GameVersion *GameVersion
	Expansion   *Expansion
	RaidName    *string
	Difficulty  *Difficulty
	Faction     *Faction

	MinPrice *int64
	MaxPrice *int64

	// RolesNeeded は募集の必要ロールといずれかが一致すれば通過する。
	RolesNeeded []Role

	IsSaved *bool

	// PosterTiers は募集者の区分といずれかが一致すれば通過する。
	PosterTiers []PosterTier

	ScheduledFrom *time.Time
	ScheduledTo   *time.Time

	BossClear *BossClearType

	// Search はレイド名・サーバー・募集者名・メモに対する部分一致検索。空文字は未指定。
	Search string
}

// IsEmpty はどの条件も指定されていない（恒等フィルタ）かどうかを返す。
func (f ListingFilter) IsEmpty() bool {
	return f.GameVersion == nil &&
		f.Expansion == nil &&
		f.RaidName == nil &&
		f.Difficulty == nil &&
		f.Faction == nil &&
		f.MinPrice == nil &&
		f.MaxPrice == nil &&
		len(f.RolesNeeded) == 0 &&
		f.IsSaved == nil &&
		len(f.PosterTiers) == 0 &&
		f.ScheduledFrom == nil &&
		f.ScheduledTo == nil &&
		f.BossClear == nil &&
		f.Search == ""
}

// SortOption は並び順の選択肢を表す。
type SortOption string

const (
	SortPriceAsc      SortOption = "price_asc"
	SortPriceDesc     SortOption = "price_desc"
	SortPostedDesc    SortOption = "posted_desc"
	SortPostedAsc     SortOption = "posted_asc"
	SortScheduledAsc  SortOption = "scheduled_asc"
	SortScheduledDesc SortOption = "scheduled_desc"
	SortSignupsDesc   SortOption = "signups_desc"
	SortKarmaDesc     SortOption = "karma_desc"
)

// DefaultSortOption は並び順未指定時のデフォルト（新着順）。
const DefaultSortOption = SortPostedDesc

// SortOptions は定義済みの並び順を表示順で返す。
func SortOptions() []SortOption {
	return []SortOption{
		SortScheduledAsc,
		SortScheduledDesc,
		SortPriceAsc,
		SortPriceDesc,
		SortPostedDesc,
		SortPostedAsc,
		SortSignupsDesc,
		SortKarmaDesc,
	}
}

// Ptr は値のポインタを返す。フィルタ構築用のヘルパー。
func Ptr[T any](v T) *T {
	return &v
}
