// Package repository は募集カタログの永続化インターフェースと実装を提供する。
package repository

import (
	"context"
	"encoding/json"

	"github.com/hitoshi/raidboard/internal/model"
)

// ListingRepository は募集カタログの読み取りインターフェース。
// 募集の作成・更新はアプリケーションの対象外で、カタログは読み込み単位でイミュータブルに扱う。
type ListingRepository interface {
	// List はカタログ順で全募集を返す。
	List(ctx context.Context) ([]model.Listing, error)

	// FindByID は指定IDの募集を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Listing, error)
}

// CatalogImporter はカタログの一括取り込みインターフェース。migrate seed から利用する。
type CatalogImporter interface {
	// Import は募集ドキュメント列で既存カタログを置き換え、取り込んだ件数を返す。
	Import(ctx context.Context, docs []json.RawMessage) (int, error)

	// Count はカタログの件数を返す。
	Count(ctx context.Context) (int, error)
}

var (
	_ ListingRepository = (*MemoryListingRepo)(nil)
	_ ListingRepository = (*PostgresListingRepo)(nil)
	_ CatalogImporter   = (*PostgresListingRepo)(nil)
)
