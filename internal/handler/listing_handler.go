package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/raidboard/internal/board"
	"github.com/hitoshi/raidboard/internal/catalog"
	"github.com/hitoshi/raidboard/internal/listing"
	"github.com/hitoshi/raidboard/internal/model"
	"github.com/hitoshi/raidboard/internal/security"
)

// ListingServiceInterface は募集ハンドラーが必要とするサービスインターフェース。
// board.Service が実装する。
type ListingServiceInterface interface {
	// Search はフィルタ・並び順・ページ番号に従って募集一覧を返す。
	Search(ctx context.Context, req board.SearchRequest) (*board.SearchResult, error)
	// Get は募集詳細を返す。見つからない場合は LISTING_NOT_FOUND エラー。
	Get(ctx context.Context, id string) (*model.Listing, error)
	// Options はフィルタパネルの選択肢を返す。
	Options(ctx context.Context, f model.ListingFilter) (*board.FilterOptions, error)
	// Dictionaries は表示用の参照データを返す。
	Dictionaries() *board.Dictionaries
	// Now は派生値の計算に使う基準時刻を返す。
	Now() time.Time
}

// ListingHandler は募集ボードのHTTPハンドラー。
type ListingHandler struct {
	service   ListingServiceInterface
	presenter *presenter
	loc       *time.Location
}

// NewListingHandler はListingHandlerを生成する。
// loc は開催日ラベルやクイックフィルタの暦日計算に使うタイムゾーン。
func NewListingHandler(service ListingServiceInterface, sanitizer security.NoteSanitizer, loc *time.Location) *ListingHandler {
	p := newPresenter(sanitizer, loc)
	return &ListingHandler{
		service:   service,
		presenter: p,
		loc:       p.loc,
	}
}

// --- レスポンス型 ---

// filterOptionsResponse はフィルタ選択肢のレスポンス。
type filterOptionsResponse struct {
	GameVersions []model.GameVersion   `json:"game_versions"`
	Expansions   []model.Expansion     `json:"expansions"`
	Raids        []string              `json:"raids"`
	Difficulties []model.Difficulty    `json:"difficulties"`
	Factions     []model.Faction       `json:"factions"`
	Roles        []model.Role          `json:"roles"`
	PosterTiers  []model.PosterTier    `json:"tiers"`
	BossClear    []model.BossClearType `json:"boss_clear"`
	SortOptions  []model.SortOption    `json:"sort_options"`
	Windows      []string              `json:"windows"`
	MatchCount   int                   `json:"match_count"`
	PriceRange   priceRangeResponse    `json:"price_range"`
}

// priceRangeResponse は価格範囲のレスポンス。
type priceRangeResponse struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	MinLabel string `json:"min_label"`
	MaxLabel string `json:"max_label"`
}

// catalogResponse は参照データのレスポンス。
type catalogResponse struct {
	Expansions   []expansionEntry    `json:"expansions"`
	Difficulties []difficultyEntry   `json:"difficulties"`
	Bosses       map[string][]string `json:"bosses"`
}

type expansionEntry struct {
	Key         model.Expansion   `json:"key"`
	Label       string            `json:"label"`
	GameVersion model.GameVersion `json:"game_version"`
	Raids       []string          `json:"raids"`
}

type difficultyEntry struct {
	Key   model.Difficulty `json:"key"`
	Label string           `json:"label"`
	Color string           `json:"color"`
}

// ListListings は募集一覧を取得する。
// GET /api/listings?game_version=...&sort=...&page=...
func (h *ListingHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	now := h.service.Now()
	ctx := catalog.WithReferenceTime(r.Context(), now)

	req, err := board.ParseSearchRequest(r.URL.Query(), now, h.loc)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	result, err := h.service.Search(ctx, req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := listingListResponse{
		Listings:   h.presenter.list(result.Listings, result.Now),
		Sort:       string(result.Sort),
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
		TotalCount: result.TotalCount,
	}
	if result.TotalCount == 0 {
		resp.EmptyMessage = board.EmptyResultMessage
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetListing は募集詳細を取得する。
// GET /api/listings/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	now := h.service.Now()

	l, err := h.service.Get(catalog.WithReferenceTime(r.Context(), now), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	if l == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewListingNotFoundError(id))
		return
	}

	writeJSON(w, http.StatusOK, h.presenter.detail(*l, now))
}

// GetOptions は現在のフィルタに対する選択肢と価格範囲を取得する。
// GET /api/listings/options?game_version=...&expansion=...
func (h *ListingHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	now := h.service.Now()
	f, err := board.ParseFilter(r.URL.Query(), now, h.loc)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	opts, err := h.service.Options(catalog.WithReferenceTime(r.Context(), now), f)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	resp := filterOptionsResponse{
		GameVersions: opts.GameVersions,
		Expansions:   opts.Expansions,
		Raids:        opts.Raids,
		Difficulties: opts.Difficulties,
		Factions:     opts.Factions,
		Roles:        opts.Roles,
		PosterTiers:  opts.PosterTiers,
		BossClear:    opts.BossClear,
		SortOptions:  opts.SortOptions,
		Windows:      make([]string, 0, len(opts.Windows)),
		MatchCount:   opts.MatchCount,
		PriceRange: priceRangeResponse{
			Min:      opts.PriceMin,
			Max:      opts.PriceMax,
			MinLabel: listing.FormatGold(opts.PriceMin),
			MaxLabel: listing.FormatGold(opts.PriceMax),
		},
	}
	for _, win := range opts.Windows {
		resp.Windows = append(resp.Windows, string(win))
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetCatalog は拡張パック・難易度・ボスの参照データを取得する。
// GET /api/catalog
func (h *ListingHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	d := h.service.Dictionaries()

	resp := catalogResponse{
		Expansions:   make([]expansionEntry, 0, len(d.ExpansionLabels)),
		Difficulties: make([]difficultyEntry, 0, len(d.DifficultyLabels)),
		Bosses:       d.BossesByRaid,
	}
	for _, exp := range d.ExpansionOrder {
		resp.Expansions = append(resp.Expansions, expansionEntry{
			Key:         exp,
			Label:       d.ExpansionLabels[exp],
			GameVersion: d.ExpansionVersions[exp],
			Raids:       d.RaidsByExpansion[exp],
		})
	}
	for _, diff := range d.DifficultyOrder {
		resp.Difficulties = append(resp.Difficulties, difficultyEntry{
			Key:   diff,
			Label: d.DifficultyLabels[diff],
			Color: string(d.DifficultyColors[diff]),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}
