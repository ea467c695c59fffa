package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// corsMaxAge はプリフライト結果のキャッシュ秒数。
const corsMaxAge = 86400

// NewCORSMiddleware は指定されたオリジンに対するCORSミドルウェアを返す。
// allowedOrigins はカンマ区切りで複数指定できる。読み取り専用APIのためGET/OPTIONSのみ許可する。
func NewCORSMiddleware(allowedOrigins string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: splitOrigins(allowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Retry-After"},
		MaxAge:         corsMaxAge,
	})
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
