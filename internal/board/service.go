// Package board は募集ボードのユースケース（検索、詳細取得、フィルタ選択肢、辞書）を提供する。
package board

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/raidboard/internal/catalog"
	"github.com/hitoshi/raidboard/internal/listing"
	"github.com/hitoshi/raidboard/internal/metrics"
	"github.com/hitoshi/raidboard/internal/model"
	"github.com/hitoshi/raidboard/internal/repository"
)

// EmptyResultMessage は一致する募集がない場合の表示メッセージ。
const EmptyResultMessage = "No raids found matching your filters"

// Service は募集カタログに対する検索サービス。
// 状態を持たず、呼び出しごとにリポジトリからカタログを取得してクエリエンジンに渡す。
type Service struct {
	repo     repository.ListingRepository
	metrics  metrics.MetricsCollector
	source   string
	pageSize int
	now      func() time.Time
}

// Option はServiceの設定を変更する。
type Option func(*Service)

// WithClock は現在時刻の取得関数を差し替える。
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithPageSize は1ページあたりの件数を設定する。
func WithPageSize(size int) Option {
	return func(s *Service) { s.pageSize = size }
}

// WithSourceName はメトリクスに記録するカタログのソース名を設定する。
func WithSourceName(name string) Option {
	return func(s *Service) { s.source = name }
}

// NewService はServiceの新しいインスタンスを生成する。
// collector が nil の場合はメトリクスを記録しない。
func NewService(repo repository.ListingRepository, collector metrics.MetricsCollector, opts ...Option) *Service {
	if collector == nil {
		collector = metrics.NopCollector{}
	}
	s := &Service{
		repo:     repo,
		metrics:  collector,
		source:   "seed",
		pageSize: listing.DefaultPageSize,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchRequest は検索条件を表す。
type SearchRequest struct {
	Filter model.ListingFilter
	Sort   model.SortOption // 空の場合は新着順
	Page   int              // 1始まり。範囲外はクランプされる
}

// SearchResult は検索結果を表す。
type SearchResult struct {
	Listings   []model.Listing
	Sort       model.SortOption
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
	// Now は派生値（経過時間や開催ラベル）の計算と、カタログの相対時刻の解決に使った基準時刻。
	Now time.Time
}

// Search はカタログを絞り込み・並び替え・ページングして返す。
func (s *Service) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	start := time.Now()
	ctx, now := s.pinReferenceTime(ctx)

	sortOpt := req.Sort
	if sortOpt == "" {
		sortOpt = model.DefaultSortOption
	}

	listings, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	result := listing.Query(listings, req.Filter, sortOpt, s.pageSize, req.Page)
	s.metrics.RecordQuery(string(sortOpt), result.TotalCount, time.Since(start))

	return &SearchResult{
		Listings:   result.Items,
		Sort:       sortOpt,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
		TotalCount: result.TotalCount,
		Now:        now,
	}, nil
}

// Get は指定IDの募集を返す。見つからない場合は LISTING_NOT_FOUND エラーを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Listing, error) {
	ctx, _ = s.pinReferenceTime(ctx)
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.metrics.RecordCatalogLoadFailure(s.source)
		return nil, fmt.Errorf("failed to find listing %s: %w", id, err)
	}
	if l == nil {
		return nil, model.NewListingNotFoundError(id)
	}
	return l, nil
}

// Now はサービスの基準時刻を返す。
func (s *Service) Now() time.Time {
	return s.now()
}

// pinReferenceTime はリクエストの基準時刻を確定させる。
// 呼び出し元が catalog.WithReferenceTime で設定済みならその時刻を使い、
// 未設定ならサービスの時計から1度だけ取得してコンテキストに設定する。
func (s *Service) pinReferenceTime(ctx context.Context) (context.Context, time.Time) {
	now := catalog.ReferenceTime(ctx, s.now)
	return catalog.WithReferenceTime(ctx, now), now
}

// loadCatalog はリポジトリからカタログを取得し、件数を記録する。
func (s *Service) loadCatalog(ctx context.Context) ([]model.Listing, error) {
	listings, err := s.repo.List(ctx)
	if err != nil {
		s.metrics.RecordCatalogLoadFailure(s.source)
		slog.Error("カタログの読み込みに失敗しました",
			slog.String("source", s.source),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	s.metrics.RecordCatalogSize(len(listings))
	return listings, nil
}
