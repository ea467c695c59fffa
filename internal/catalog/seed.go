// Package catalog は募集カタログの読み込みと検証を行う。
//
// 募集ドキュメントはJSON Schemaで構造を検証したのち model.Listing に変換され、
// ドメインの不変条件（購入者数・ロール枠の範囲、投稿時刻、ボス選択）を確認される。
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hitoshi/raidboard/internal/gamedata"
	"github.com/hitoshi/raidboard/internal/model"
)

//go:embed seed/*.json
var seedFS embed.FS

// SeedDocuments は埋め込みのシードカタログを募集ドキュメントごとに返す。
func SeedDocuments() ([]json.RawMessage, error) {
	raw, err := seedFS.ReadFile("seed/listings.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read seed catalog: %w", err)
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}
	return docs, nil
}

// LoadSeed は埋め込みのシードカタログを now 基準で読み込む。
// いずれかの募集が不正な場合は INVALID_CATALOG エラーを返す。
func LoadSeed(now time.Time) ([]model.Listing, error) {
	docs, err := SeedDocuments()
	if err != nil {
		return nil, model.NewInvalidCatalogError(err.Error())
	}
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}
	return Decode(validator, docs, now)
}

// Decode は募集ドキュメント列を検証・変換してカタログ順のListingスライスを返す。
// IDの重複も不正として扱う。
func Decode(v *Validator, docs []json.RawMessage, now time.Time) ([]model.Listing, error) {
	listings := make([]model.Listing, 0, len(docs))
	seen := make(map[string]struct{}, len(docs))
	for i, doc := range docs {
		l, err := DecodeListing(v, doc, now)
		if err != nil {
			return nil, model.NewInvalidCatalogError(fmt.Sprintf("entry %d: %v", i, err))
		}
		if _, dup := seen[l.ID]; dup {
			return nil, model.NewInvalidCatalogError(fmt.Sprintf("entry %d: duplicate id %s", i, l.ID))
		}
		seen[l.ID] = struct{}{}
		listings = append(listings, l)
	}
	return listings, nil
}

// DecodeListing は1件の募集ドキュメントを検証してListingに変換する。
func DecodeListing(v *Validator, doc []byte, now time.Time) (model.Listing, error) {
	rec, err := v.DecodeRecord(doc)
	if err != nil {
		return model.Listing{}, err
	}
	l, err := rec.ToListing(now)
	if err != nil {
		return model.Listing{}, err
	}
	if err := l.Validate(now, gamedata.BossesForRaid(l.RaidName)); err != nil {
		return model.Listing{}, err
	}
	return l, nil
}
