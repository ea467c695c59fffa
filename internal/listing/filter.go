// Package listing は募集カタログに対する絞り込み・並び替え・ページングと、
// 表示用の派生値（フルクリア判定、相場比較、ゴールド表記、日時ラベル）を提供する。
//
// すべての関数は純粋関数であり、I/Oやパッケージレベルの可変状態を持たない。
// 入力のスライスを変更することはない。
package listing

import (
	"slices"

	"github.com/hitoshi/raidboard/internal/model"
)

// Matches は募集がフィルタ条件をすべて満たすかどうかを返す。
// 未指定のフィールドは条件として扱わない（空のフィルタはすべての募集に一致する）。
func Matches(l model.Listing, f model.ListingFilter) bool {
	return newMatcher(f).match(l)
}

// matcher はフィルタ1回分の評価状態を保持する。検索語の正規化は生成時に1度だけ行う。
type matcher struct {
	f      model.ListingFilter
	search *searchTerm
}

func newMatcher(f model.ListingFilter) *matcher {
	return &matcher{f: f, search: newSearchTerm(f.Search)}
}

func (m *matcher) match(l model.Listing) bool {
	f := m.f
	if f.GameVersion != nil && l.GameVersion != *f.GameVersion {
		return false
	}
	if f.Expansion != nil && l.Expansion != *f.Expansion {
		return false
	}
	if f.RaidName != nil && l.RaidName != *f.RaidName {
		return false
	}
	if f.Difficulty != nil && l.Difficulty != *f.Difficulty {
		return false
	}
	if f.Faction != nil && l.Faction != *f.Faction {
		return false
	}
	if f.IsSaved != nil && l.IsSaved != *f.IsSaved {
		return false
	}

	if f.MinPrice != nil && l.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && l.Price > *f.MaxPrice {
		return false
	}

	if len(f.RolesNeeded) > 0 && !slices.ContainsFunc(f.RolesNeeded, l.NeedsRole) {
		return false
	}
	if len(f.PosterTiers) > 0 && !slices.Contains(f.PosterTiers, l.Poster.Tier) {
		return false
	}

	if !matchesSchedule(l, f) {
		return false
	}

	if f.BossClear != nil {
		switch *f.BossClear {
		case model.BossClearFull:
			if !IsFullClear(l) {
				return false
			}
		case model.BossClearPartial:
			if IsFullClear(l) {
				return false
			}
		}
	}

	if m.search != nil && !m.search.matches(l) {
		return false
	}
	return true
}

// matchesSchedule は開催日時の範囲条件（両端を含む）を評価する。
// 開催日時が未設定の募集は、範囲のいずれかが指定されていれば除外する。
func matchesSchedule(l model.Listing, f model.ListingFilter) bool {
	if f.ScheduledFrom == nil && f.ScheduledTo == nil {
		return true
	}
	if l.ScheduledTime == nil {
		return false
	}
	t := *l.ScheduledTime
	if f.ScheduledFrom != nil && t.Before(*f.ScheduledFrom) {
		return false
	}
	if f.ScheduledTo != nil && t.After(*f.ScheduledTo) {
		return false
	}
	return true
}

// Filter はフィルタに一致する募集をカタログ順のまま新しいスライスで返す。
func Filter(catalog []model.Listing, f model.ListingFilter) []model.Listing {
	m := newMatcher(f)
	result := make([]model.Listing, 0, len(catalog))
	for _, l := range catalog {
		if m.match(l) {
			result = append(result, l)
		}
	}
	return result
}
