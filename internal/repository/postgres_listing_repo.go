package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/hitoshi/raidboard/internal/catalog"
	"github.com/hitoshi/raidboard/internal/model"
)

// pgUndefinedTable はテーブル未作成時のPostgreSQLエラーコード。
const pgUndefinedTable = "42P01"

// ErrListingsTableMissing はマイグレーション未実行でlistingsテーブルが存在しないことを示す。
var ErrListingsTableMissing = errors.New("listings table does not exist: run `raidboard migrate` first")

// PostgresListingRepo はPostgreSQLのlistingsテーブルを使用した募集リポジトリ。
// 各行のdocumentカラムに募集ドキュメント（JSONB）を保持し、読み込み時にスキーマ検証する。
type PostgresListingRepo struct {
	db        *sql.DB
	validator *catalog.Validator
	now       func() time.Time
}

// NewPostgresListingRepo はPostgresListingRepoを生成する。
// now は相対時間（posted_ago等）で保存されたドキュメントの基準時刻に使う。
// コンテキストに catalog.WithReferenceTime で基準時刻が設定されていればそちらを優先する。
func NewPostgresListingRepo(db *sql.DB, validator *catalog.Validator, now func() time.Time) *PostgresListingRepo {
	if now == nil {
		now = time.Now
	}
	return &PostgresListingRepo{db: db, validator: validator, now: now}
}

// List はposition順で全募集を返す。
func (r *PostgresListingRepo) List(ctx context.Context) ([]model.Listing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT document FROM listings ORDER BY position`,
	)
	if err != nil {
		return nil, wrapQueryError("募集一覧の取得に失敗しました", err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("募集のスキャンに失敗しました: %w", err)
		}
		docs = append(docs, json.RawMessage(doc))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("募集一覧の走査に失敗しました: %w", err)
	}

	return catalog.Decode(r.validator, docs, catalog.ReferenceTime(ctx, r.now))
}

// FindByID は指定IDの募集を取得する。見つからない場合はnilを返す。
func (r *PostgresListingRepo) FindByID(ctx context.Context, id string) (*model.Listing, error) {
	var doc []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT document FROM listings WHERE id = $1`,
		id,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapQueryError("募集の取得に失敗しました", err)
	}

	l, err := catalog.DecodeListing(r.validator, doc, catalog.ReferenceTime(ctx, r.now))
	if err != nil {
		return nil, model.NewInvalidCatalogError(err.Error())
	}
	return &l, nil
}

// Import は募集ドキュメント列をカタログ順で取り込む。
// 既存のカタログは同一トランザクション内で置き換える。
// 取り込み前にすべてのドキュメントを検証し、1件でも不正なら何も書き込まない。
func (r *PostgresListingRepo) Import(ctx context.Context, docs []json.RawMessage) (int, error) {
	listings, err := catalog.Decode(r.validator, docs, catalog.ReferenceTime(ctx, r.now))
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("トランザクションの開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
		return 0, wrapQueryError("既存カタログの削除に失敗しました", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO listings (id, position, game_version, expansion, raid_name, document, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now(), now())`,
	)
	if err != nil {
		return 0, fmt.Errorf("INSERT文の準備に失敗しました: %w", err)
	}
	defer stmt.Close()

	for i, l := range listings {
		if _, err := stmt.ExecContext(ctx,
			l.ID, i, string(l.GameVersion), string(l.Expansion), l.RaidName, []byte(docs[i]),
		); err != nil {
			return 0, fmt.Errorf("募集 %s の登録に失敗しました: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("トランザクションのコミットに失敗しました: %w", err)
	}
	return len(listings), nil
}

// Count はカタログの件数を返す。
func (r *PostgresListingRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM listings`).Scan(&n); err != nil {
		return 0, wrapQueryError("募集件数の取得に失敗しました", err)
	}
	return n, nil
}

// wrapQueryError はテーブル未作成のエラーを ErrListingsTableMissing に変換する。
func wrapQueryError(msg string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUndefinedTable {
		return fmt.Errorf("%s: %w", msg, ErrListingsTableMissing)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
