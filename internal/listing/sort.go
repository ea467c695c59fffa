package listing

import (
	"cmp"
	"slices"

	"github.com/hitoshi/raidboard/internal/model"
)

// comparator は2件の募集の順序を返す。負ならaが先。
type comparator func(a, b model.Listing) int

// comparators は並び順ごとの比較関数テーブル。
// 登録されていない並び順はカタログ順のまま返す。
var comparators = map[model.SortOption]comparator{
	model.SortPriceAsc: func(a, b model.Listing) int {
		return cmp.Compare(a.Price, b.Price)
	},
	model.SortPriceDesc: func(a, b model.Listing) int {
		return cmp.Compare(b.Price, a.Price)
	},
	model.SortPostedDesc: func(a, b model.Listing) int {
		return b.PostedAt.Compare(a.PostedAt)
	},
	model.SortPostedAsc: func(a, b model.Listing) int {
		return a.PostedAt.Compare(b.PostedAt)
	},
	model.SortScheduledAsc: func(a, b model.Listing) int {
		return compareScheduled(a, b, false)
	},
	model.SortScheduledDesc: func(a, b model.Listing) int {
		return compareScheduled(a, b, true)
	},
	model.SortSignupsDesc: func(a, b model.Listing) int {
		return cmp.Compare(b.Signups, a.Signups)
	},
	model.SortKarmaDesc: func(a, b model.Listing) int {
		return cmp.Compare(b.Poster.Karma, a.Poster.Karma)
	},
}

// compareScheduled は開催日時で比較する。開催日時が未設定の募集は昇順・降順とも末尾に置く。
func compareScheduled(a, b model.Listing, desc bool) int {
	switch {
	case a.ScheduledTime == nil && b.ScheduledTime == nil:
		return 0
	case a.ScheduledTime == nil:
		return 1
	case b.ScheduledTime == nil:
		return -1
	}
	if desc {
		return b.ScheduledTime.Compare(*a.ScheduledTime)
	}
	return a.ScheduledTime.Compare(*b.ScheduledTime)
}

// IsSupportedSort は並び順が比較関数テーブルに登録されているかどうかを返す。
func IsSupportedSort(opt model.SortOption) bool {
	_, ok := comparators[opt]
	return ok
}

// SortedBy は募集を指定の並び順で安定ソートした新しいスライスを返す。
// 同じキーの募集は入力順を保つ。入力スライスは変更しない。
// 未知の並び順の場合は入力順のコピーを返す。
func SortedBy(listings []model.Listing, opt model.SortOption) []model.Listing {
	sorted := slices.Clone(listings)
	if sorted == nil {
		sorted = []model.Listing{}
	}
	compare, ok := comparators[opt]
	if !ok {
		return sorted
	}
	slices.SortStableFunc(sorted, compare)
	return sorted
}
