package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// healthCheckTimeout はヘルスチェック時の依存先確認のタイムアウト。
const healthCheckTimeout = 3 * time.Second

// HealthChecker は依存先（DB等）の疎通確認インターフェース。*sql.DB が実装する。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// healthResponse はヘルスチェックのレスポンス。
type healthResponse struct {
	Status        string `json:"status"`
	CatalogSource string `json:"catalog_source"`
}

// HealthHandler はヘルスチェックのHTTPハンドラー。
type HealthHandler struct {
	checker HealthChecker
	source  string
}

// NewHealthHandler はHealthHandlerを生成する。
// checker が nil の場合（組み込みカタログ利用時）は常に正常を返す。
func NewHealthHandler(checker HealthChecker, source string) *HealthHandler {
	return &HealthHandler{checker: checker, source: source}
}

// Health はサービスの稼働状態を返す。
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.checker != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := h.checker.PingContext(ctx); err != nil {
			slog.Warn("health check failed",
				slog.String("catalog_source", h.source),
				slog.String("error", err.Error()),
			)
			writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", CatalogSource: h.source})
			return
		}
	}

	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", CatalogSource: h.source})
}
