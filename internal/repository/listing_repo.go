package repository

import (
	"context"

	"github.com/hitoshi/raidboard/internal/model"
)

// MemoryListingRepo は起動時に読み込んだカタログを保持するリポジトリ。
// 保持するカタログは変更せず、呼び出し元にはスライスやポインタまで複製したコピーを返す。
type MemoryListingRepo struct {
	listings []model.Listing
	byID     map[string]int
}

// NewMemoryListingRepo はカタログからMemoryListingRepoを生成する。
func NewMemoryListingRepo(listings []model.Listing) *MemoryListingRepo {
	byID := make(map[string]int, len(listings))
	for i, l := range listings {
		byID[l.ID] = i
	}
	return &MemoryListingRepo{
		listings: cloneListings(listings),
		byID:     byID,
	}
}

// List はカタログ順で全募集のコピーを返す。
func (r *MemoryListingRepo) List(ctx context.Context) ([]model.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return cloneListings(r.listings), nil
}

// FindByID は指定IDの募集を取得する。見つからない場合はnilを返す。
func (r *MemoryListingRepo) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	i, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	l := r.listings[i].Clone()
	return &l, nil
}

// cloneListings は各募集を複製した新しいスライスを返す。nilの場合も空スライスを返す。
func cloneListings(listings []model.Listing) []model.Listing {
	result := make([]model.Listing, len(listings))
	for i, l := range listings {
		result[i] = l.Clone()
	}
	return result
}
