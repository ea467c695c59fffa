package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/raidboard/internal/board"
	"github.com/hitoshi/raidboard/internal/catalog"
	"github.com/hitoshi/raidboard/internal/model"
)

// --- モック定義 ---

// mockListingService はListingServiceInterfaceのモック実装。
type mockListingService struct {
	searchFn       func(ctx context.Context, req board.SearchRequest) (*board.SearchResult, error)
	getFn          func(ctx context.Context, id string) (*model.Listing, error)
	optionsFn      func(ctx context.Context, f model.ListingFilter) (*board.FilterOptions, error)
	dictionariesFn func() *board.Dictionaries
}

func (m *mockListingService) Search(ctx context.Context, req board.SearchRequest) (*board.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, req)
	}
	return &board.SearchResult{Page: 1, TotalPages: 1, Now: testNow}, nil
}

func (m *mockListingService) Get(ctx context.Context, id string) (*model.Listing, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, nil
}

func (m *mockListingService) Options(ctx context.Context, f model.ListingFilter) (*board.FilterOptions, error) {
	if m.optionsFn != nil {
		return m.optionsFn(ctx, f)
	}
	return &board.FilterOptions{}, nil
}

func (m *mockListingService) Dictionaries() *board.Dictionaries {
	if m.dictionariesFn != nil {
		return m.dictionariesFn()
	}
	return &board.Dictionaries{}
}

func (m *mockListingService) Now() time.Time { return testNow }

// withChiURLParam はテスト用にchiのURLパラメータを注入するヘルパー。
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// --- GET /api/listings テスト ---

func TestListingHandler_ListListings_PassesParsedRequest(t *testing.T) {
	var captured board.SearchRequest
	svc := &mockListingService{
		searchFn: func(ctx context.Context, req board.SearchRequest) (*board.SearchResult, error) {
			captured = req
			return &board.SearchResult{Sort: req.Sort, Page: 2, PageSize: 10, TotalPages: 2, TotalCount: 11, Now: testNow}, nil
		},
	}
	h := NewListingHandler(svc, nil, time.UTC)

	req := httptest.NewRequest(http.MethodGet, "/api/listings?roles=tank&roles=healer&window=today&sort=karma_desc&page=2", nil)
	w := httptest.NewRecorder()
	h.ListListings(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if captured.Sort != model.SortKarmaDesc || captured.Page != 2 {
		t.Errorf("sort = %q, page = %d", captured.Sort, captured.Page)
	}
	if len(captured.Filter.RolesNeeded) != 2 {
		t.Errorf("RolesNeeded = %v", captured.Filter.RolesNeeded)
	}
	if captured.Filter.ScheduledFrom == nil || !captured.Filter.ScheduledFrom.Equal(testNow.Truncate(24*time.Hour)) {
		t.Errorf("ScheduledFrom = %v, want start of today", captured.Filter.ScheduledFrom)
	}

	resp := decodeList(t, w)
	if resp.Sort != "karma_desc" || resp.TotalCount != 11 {
		t.Errorf("sort = %q, totalCount = %d", resp.Sort, resp.TotalCount)
	}
}

func TestListingHandler_ListListings_ServiceError(t *testing.T) {
	svc := &mockListingService{
		searchFn: func(ctx context.Context, req board.SearchRequest) (*board.SearchResult, error) {
			return nil, errors.New("database is down")
		},
	}
	h := NewListingHandler(svc, nil, time.UTC)

	w := httptest.NewRecorder()
	h.ListListings(w, httptest.NewRequest(http.MethodGet, "/api/listings", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	body := parseAPIErrorResponse(t, w)
	if body["code"] != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", body["code"])
	}
	if body["message"] == "database is down" {
		t.Error("internal error details must not leak to the response")
	}
}

func TestListingHandler_ListListings_InvalidCatalog(t *testing.T) {
	svc := &mockListingService{
		searchFn: func(ctx context.Context, req board.SearchRequest) (*board.SearchResult, error) {
			return nil, model.NewInvalidCatalogError("duplicate id raid-1")
		},
	}
	h := NewListingHandler(svc, nil, time.UTC)

	w := httptest.NewRecorder()
	h.ListListings(w, httptest.NewRequest(http.MethodGet, "/api/listings", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if body := parseAPIErrorResponse(t, w); body["code"] != model.ErrCodeInvalidCatalog {
		t.Errorf("code = %q, want INVALID_CATALOG", body["code"])
	}
}

// --- GET /api/listings/{id} テスト ---

func TestListingHandler_GetListing_NilWithoutError(t *testing.T) {
	h := NewListingHandler(&mockListingService{}, nil, time.UTC)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/listings/x", nil), "id", "x")
	w := httptest.NewRecorder()
	h.GetListing(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListingHandler_GetListing_PassesID(t *testing.T) {
	var gotID string
	svc := &mockListingService{
		getFn: func(ctx context.Context, id string) (*model.Listing, error) {
			gotID = id
			return &model.Listing{ID: id, RaidName: "Molten Core", PostedAt: testNow}, nil
		},
	}
	h := NewListingHandler(svc, nil, time.UTC)

	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/listings/raid-12", nil), "id", "raid-12")
	w := httptest.NewRecorder()
	h.GetListing(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if gotID != "raid-12" {
		t.Errorf("id = %q, want raid-12", gotID)
	}

	var raw map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if raw["schedule"] != nil {
		t.Errorf("schedule = %v, want null for unscheduled listing", raw["schedule"])
	}
	if raw["boss_label"] != "Full Clear" {
		t.Errorf("boss_label = %v, want Full Clear", raw["boss_label"])
	}
}

// --- GET /api/listings/options テスト ---

func TestListingHandler_GetOptions_InvalidFilter(t *testing.T) {
	called := false
	svc := &mockListingService{
		optionsFn: func(ctx context.Context, f model.ListingFilter) (*board.FilterOptions, error) {
			called = true
			return &board.FilterOptions{}, nil
		},
	}
	h := NewListingHandler(svc, nil, time.UTC)

	w := httptest.NewRecorder()
	h.GetOptions(w, httptest.NewRequest(http.MethodGet, "/api/listings/options?game_version=ptr", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if called {
		t.Error("service should not be called for invalid filter")
	}
}

// --- マッピング ---

func TestMapAPIErrorToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{model.ErrCodeInvalidFilter, http.StatusBadRequest},
		{model.ErrCodeInvalidSort, http.StatusBadRequest},
		{model.ErrCodeInvalidPage, http.StatusBadRequest},
		{model.ErrCodeListingNotFound, http.StatusNotFound},
		{model.ErrCodeInvalidCatalog, http.StatusInternalServerError},
		{"UNKNOWN", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := mapAPIErrorToHTTPStatus(&model.APIError{Code: tt.code}); got != tt.want {
			t.Errorf("mapAPIErrorToHTTPStatus(%s) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

// --- GET /health テスト ---

// mockHealthChecker はHealthCheckerのモック実装。
type mockHealthChecker struct {
	pingFn func(ctx context.Context) error
}

func (m *mockHealthChecker) PingContext(ctx context.Context) error {
	if m.pingFn != nil {
		return m.pingFn(ctx)
	}
	return nil
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		checker    HealthChecker
		wantStatus int
		wantBody   string
	}{
		{"チェッカーなし", nil, http.StatusOK, "ok"},
		{"疎通成功", &mockHealthChecker{}, http.StatusOK, "ok"},
		{"疎通失敗", &mockHealthChecker{pingFn: func(ctx context.Context) error {
			return errors.New("connection refused")
		}}, http.StatusServiceUnavailable, "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checker, "postgres")

			w := httptest.NewRecorder()
			h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body healthResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode: %v", err)
			}
			if body.Status != tt.wantBody || body.CatalogSource != "postgres" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

// TestListingHandler_PinsReferenceTime は各エンドポイントがサービスに同じ基準時刻を渡すことをテストする。
func TestListingHandler_PinsReferenceTime(t *testing.T) {
	unpinned := func() time.Time {
		t.Error("reference time was not pinned in the request context")
		return time.Time{}
	}
	var got []time.Time
	svc := &mockListingService{
		searchFn: func(ctx context.Context, req board.SearchRequest) (*board.SearchResult, error) {
			got = append(got, catalog.ReferenceTime(ctx, unpinned))
			return &board.SearchResult{Page: 1, TotalPages: 1, Now: testNow}, nil
		},
		getFn: func(ctx context.Context, id string) (*model.Listing, error) {
			got = append(got, catalog.ReferenceTime(ctx, unpinned))
			return nil, nil
		},
		optionsFn: func(ctx context.Context, f model.ListingFilter) (*board.FilterOptions, error) {
			got = append(got, catalog.ReferenceTime(ctx, unpinned))
			return &board.FilterOptions{}, nil
		},
	}
	h := NewListingHandler(svc, nil, time.UTC)

	h.ListListings(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/listings", nil))
	h.GetListing(httptest.NewRecorder(), withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/listings/raid-1", nil), "id", "raid-1"))
	h.GetOptions(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/listings/options", nil))

	if len(got) != 3 {
		t.Fatalf("service called %d times, want 3", len(got))
	}
	for i, ts := range got {
		if !ts.Equal(testNow) {
			t.Errorf("call %d reference time = %v, want %v", i, ts, testNow)
		}
	}
}
