package listing

import (
	"slices"
	"testing"
	"time"

	"github.com/hitoshi/raidboard/internal/model"
)

// TestSortedBy_DoesNotMutateInput は並び替えが入力スライスを変更しないことをテストする。
func TestSortedBy_DoesNotMutateInput(t *testing.T) {
	listings := loadCatalog(t)
	before := ids(listings)

	for _, opt := range model.SortOptions() {
		_ = SortedBy(listings, opt)
		if !slices.Equal(ids(listings), before) {
			t.Fatalf("SortedBy(%s) mutated the catalog", opt)
		}
	}
}

// TestSortedBy_Order は各並び順でキーが単調になることをテストする。
func TestSortedBy_Order(t *testing.T) {
	listings := loadCatalog(t)

	tests := []struct {
		opt     model.SortOption
		inOrder func(a, b model.Listing) bool
	}{
		{model.SortPriceAsc, func(a, b model.Listing) bool { return a.Price <= b.Price }},
		{model.SortPriceDesc, func(a, b model.Listing) bool { return a.Price >= b.Price }},
		{model.SortPostedDesc, func(a, b model.Listing) bool { return !a.PostedAt.Before(b.PostedAt) }},
		{model.SortPostedAsc, func(a, b model.Listing) bool { return !a.PostedAt.After(b.PostedAt) }},
		{model.SortScheduledAsc, func(a, b model.Listing) bool { return !a.ScheduledTime.After(*b.ScheduledTime) }},
		{model.SortScheduledDesc, func(a, b model.Listing) bool { return !a.ScheduledTime.Before(*b.ScheduledTime) }},
		{model.SortSignupsDesc, func(a, b model.Listing) bool { return a.Signups >= b.Signups }},
		{model.SortKarmaDesc, func(a, b model.Listing) bool { return a.Poster.Karma >= b.Poster.Karma }},
	}

	for _, tt := range tests {
		t.Run(string(tt.opt), func(t *testing.T) {
			sorted := SortedBy(listings, tt.opt)
			if len(sorted) != len(listings) {
				t.Fatalf("len = %d, want %d", len(sorted), len(listings))
			}
			for i := 1; i < len(sorted); i++ {
				if !tt.inOrder(sorted[i-1], sorted[i]) {
					t.Errorf("%s before %s breaks %s order", sorted[i-1].ID, sorted[i].ID, tt.opt)
				}
			}
		})
	}
}

// TestSortedBy_Stable は同じキーの募集がカタログ順を保つことをテストする。
func TestSortedBy_Stable(t *testing.T) {
	listings := loadCatalog(t)

	// raid-1 と raid-19 はどちらもカルマ245
	sorted := ids(SortedBy(listings, model.SortKarmaDesc))
	i1 := slices.Index(sorted, "raid-1")
	i19 := slices.Index(sorted, "raid-19")
	if i1 < 0 || i19 < 0 || i1 > i19 {
		t.Errorf("raid-1 index %d, raid-19 index %d: equal karma must keep catalog order", i1, i19)
	}

	same := []model.Listing{
		{ID: "a", Price: 100},
		{ID: "b", Price: 50},
		{ID: "c", Price: 100},
		{ID: "d", Price: 50},
	}
	got := ids(SortedBy(same, model.SortPriceAsc))
	want := []string{"b", "d", "a", "c"}
	if !slices.Equal(got, want) {
		t.Errorf("price_asc = %v, want %v", got, want)
	}
	got = ids(SortedBy(same, model.SortPriceDesc))
	want = []string{"a", "c", "b", "d"}
	if !slices.Equal(got, want) {
		t.Errorf("price_desc = %v, want %v", got, want)
	}
}

// TestSortedBy_UnknownOptionKeepsCatalogOrder は未知の並び順でカタログ順のコピーが返ることをテストする。
func TestSortedBy_UnknownOptionKeepsCatalogOrder(t *testing.T) {
	listings := loadCatalog(t)

	sorted := SortedBy(listings, model.SortOption("random"))
	if !slices.Equal(ids(sorted), ids(listings)) {
		t.Error("unknown sort option should keep catalog order")
	}
	sorted[0].ID = "changed"
	if listings[0].ID == "changed" {
		t.Error("unknown sort option should return a copy")
	}
	if IsSupportedSort(model.SortOption("random")) {
		t.Error("IsSupportedSort(random) = true, want false")
	}
	for _, opt := range model.SortOptions() {
		if !IsSupportedSort(opt) {
			t.Errorf("IsSupportedSort(%s) = false, want true", opt)
		}
	}
}

// TestSortedBy_UnscheduledLast は開催日時未設定の募集が昇順・降順とも末尾になることをテストする。
func TestSortedBy_UnscheduledLast(t *testing.T) {
	early := testNow.Add(time.Hour)
	late := testNow.Add(5 * time.Hour)
	listings := []model.Listing{
		{ID: "none-1"},
		{ID: "late", ScheduledTime: &late},
		{ID: "none-2"},
		{ID: "early", ScheduledTime: &early},
	}

	if got, want := ids(SortedBy(listings, model.SortScheduledAsc)), []string{"early", "late", "none-1", "none-2"}; !slices.Equal(got, want) {
		t.Errorf("scheduled_asc = %v, want %v", got, want)
	}
	if got, want := ids(SortedBy(listings, model.SortScheduledDesc)), []string{"late", "early", "none-1", "none-2"}; !slices.Equal(got, want) {
		t.Errorf("scheduled_desc = %v, want %v", got, want)
	}
}

// TestSortedBy_Empty は空入力で空の非nilスライスが返ることをテストする。
func TestSortedBy_Empty(t *testing.T) {
	got := SortedBy(nil, model.SortPriceAsc)
	if got == nil || len(got) != 0 {
		t.Errorf("SortedBy(nil) = %#v, want empty non-nil slice", got)
	}
}
