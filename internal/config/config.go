package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // distroless イメージにはゾーン情報がない

	"github.com/joho/godotenv"
)

// カタログの取得元。
const (
	CatalogSourceSeed     = "seed"
	CatalogSourcePostgres = "postgres"
)

// ログ出力形式。
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Catalog
	CatalogSource string
	DatabaseURL   string

	// Board
	PageSize int
	Location *time.Location

	// Rate Limit
	RateLimitPerMinute int

	// Logging
	LogFormat string
	LogLevel  slog.Level

	// Server
	ServerPort      string
	ShutdownTimeout time.Duration
	MetricsEnabled  bool

	// CORS
	CORSAllowedOrigin string
}

// LoadDotEnv はカレントディレクトリの .env を読み込む。
// 既に設定済みの環境変数は上書きしない。ファイルが存在しない場合は何もしない。
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", name, err)
		}
	}
	return nil
}

// Load は環境変数からConfigを読み込む。
// 値が不正な場合、または postgres 利用時に DATABASE_URL が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	var invalid []string

	cfg.CatalogSource = getEnvString("CATALOG_SOURCE", CatalogSourceSeed)
	switch cfg.CatalogSource {
	case CatalogSourceSeed, CatalogSourcePostgres:
	default:
		invalid = append(invalid, "CATALOG_SOURCE")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.CatalogSource == CatalogSourcePostgres && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("required environment variables are not set: [DATABASE_URL]")
	}

	tz := getEnvString("TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		invalid = append(invalid, "TIMEZONE")
	}
	cfg.Location = loc

	cfg.LogFormat = strings.ToLower(getEnvString("LOG_FORMAT", LogFormatJSON))
	if cfg.LogFormat != LogFormatJSON && cfg.LogFormat != LogFormatText {
		invalid = append(invalid, "LOG_FORMAT")
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnvString("LOG_LEVEL", "info"))); err != nil {
		invalid = append(invalid, "LOG_LEVEL")
	}

	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid environment variables: %v", invalid)
	}

	// Optional fields with defaults
	cfg.PageSize = getEnvInt("PAGE_SIZE", 10)
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", 120)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	cfg.MetricsEnabled = getEnvBool("METRICS_ENABLED", true)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
