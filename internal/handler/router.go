package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/raidboard/internal/metrics"
	"github.com/hitoshi/raidboard/internal/middleware"
	"github.com/hitoshi/raidboard/internal/security"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Metrics           metrics.MetricsCollector
	MetricsHandler    http.Handler // nil の場合 /metrics は公開しない

	// ヘルスチェック
	HealthChecker HealthChecker // nil の場合は依存先の確認を行わない
	CatalogSource string

	// 募集ボード
	ListingService ListingServiceInterface
	Sanitizer      security.NoteSanitizer
	Location       *time.Location
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	RequestID → Recovery → Logging → Metrics → SecurityHeaders → CORS → RateLimit
//
// /health と /metrics はレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.NopCollector{}
	}

	r := chi.NewRouter()
	r.NotFound(middleware.WriteNotFound)
	r.MethodNotAllowed(middleware.WriteMethodNotAllowed)

	r.Use(middleware.NewRequestIDMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(logger))
	r.Use(middleware.NewMetricsMiddleware(collector))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	healthHandler := NewHealthHandler(deps.HealthChecker, deps.CatalogSource)
	listingHandler := NewListingHandler(deps.ListingService, deps.Sanitizer, deps.Location)

	// --- レート制限対象外のルート ---
	r.Get("/health", healthHandler.Health)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	// --- 募集ボードAPI ---
	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Route("/api/listings", func(r chi.Router) {
			r.Get("/", listingHandler.ListListings)
			r.Get("/options", listingHandler.GetOptions)
			r.Get("/{id}", listingHandler.GetListing)
		})
		r.Get("/api/catalog", listingHandler.GetCatalog)
	})

	return r
}
