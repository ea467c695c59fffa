package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/hitoshi/raidboard/internal/board"
	"github.com/hitoshi/raidboard/internal/catalog"
	"github.com/hitoshi/raidboard/internal/config"
	"github.com/hitoshi/raidboard/internal/database"
	"github.com/hitoshi/raidboard/internal/handler"
	"github.com/hitoshi/raidboard/internal/logger"
	"github.com/hitoshi/raidboard/internal/metrics"
	"github.com/hitoshi/raidboard/internal/middleware"
	"github.com/hitoshi/raidboard/internal/repository"
	"github.com/hitoshi/raidboard/internal/security"
)

// dbConnectTimeout は起動時のDB疎通確認のタイムアウト。
const dbConnectTimeout = 10 * time.Second

// Init はアプリケーションの初期化を行う。
// .env と環境変数からConfigを読み込み、構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w, logger.Options{})

	// 2. .env と環境変数から設定を読み込む
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 3. 設定に従ってログを再構成する
	logger.SetupDefault(w, logger.Options{Format: cfg.LogFormat, Level: cfg.LogLevel})

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	slog.Debug("starting application",
		slog.String("command", string(cmd)),
		slog.String("catalog_source", cfg.CatalogSource),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(context.Background(), cfg, rest)
	case CommandQuery:
		return runQuery(context.Background(), os.Stdout, cfg, rest)
	default:
		return runServe(cfg)
	}
}

// catalogStore はカタログの取得元と、その後始末をまとめたもの。
type catalogStore struct {
	repo    repository.ListingRepository
	checker handler.HealthChecker // seed の場合は nil
	close   func() error
}

// openCatalog は設定されたソースからカタログを開く。
//   - seed:     組み込みJSONを起動時刻基準で読み込み、メモリ上に保持する
//   - postgres: DBに接続し、リクエストごとにカタログを読み出す
func openCatalog(ctx context.Context, cfg *config.Config, now func() time.Time) (*catalogStore, error) {
	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		db, err := database.Connect(ctx, cfg.DatabaseURL, dbConnectTimeout)
		if err != nil {
			return nil, err
		}
		validator, err := catalog.NewValidator()
		if err != nil {
			db.Close()
			return nil, err
		}
		slog.Info("database connection established",
			slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
		)
		return &catalogStore{
			repo:    repository.NewPostgresListingRepo(db, validator, now),
			checker: db,
			close:   db.Close,
		}, nil
	default:
		listings, err := catalog.LoadSeed(now())
		if err != nil {
			return nil, fmt.Errorf("failed to load seed catalog: %w", err)
		}
		slog.Info("seed catalog loaded", slog.Int("listings", len(listings)))
		return &catalogStore{
			repo:  repository.NewMemoryListingRepo(listings),
			close: func() error { return nil },
		}, nil
	}
}

// server はHTTPサーバーとその依存リソースを保持する。
type server struct {
	http        *http.Server
	rateLimiter *middleware.RateLimiter
	store       *catalogStore
}

// Close はサーバーが保持するリソースを解放する。
func (s *server) Close() error {
	s.rateLimiter.Stop()
	return s.store.close()
}

// newServer は全依存関係をワイヤリングしたHTTPサーバーを構築する。
func newServer(ctx context.Context, cfg *config.Config, now func() time.Time) (*server, error) {
	// 1. カタログ
	store, err := openCatalog(ctx, cfg, now)
	if err != nil {
		return nil, err
	}

	// 2. メトリクス
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)
	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		metricsHandler = metrics.Handler(reg)
	}

	// 3. 募集ボードサービス
	service := board.NewService(store.repo, collector,
		board.WithClock(now),
		board.WithPageSize(cfg.PageSize),
		board.WithSourceName(cfg.CatalogSource),
	)

	// 4. ルーターの構築
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigPerMinute(cfg.RateLimitPerMinute))

	router := handler.NewRouter(&handler.RouterDeps{
		Logger:            slog.Default(),
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Metrics:           collector,
		MetricsHandler:    metricsHandler,
		HealthChecker:     store.checker,
		CatalogSource:     cfg.CatalogSource,
		ListingService:    service,
		Sanitizer:         security.NewNoteSanitizer(),
		Location:          cfg.Location,
	})

	return &server{
		http: &http.Server{
			Addr:         ":" + cfg.ServerPort,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		rateLimiter: rateLimiter,
		store:       store,
	}, nil
}

// runServe はAPIサーバーモードで起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	srv, err := newServer(context.Background(), cfg, time.Now)
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}
	defer srv.Close()

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server starting",
			slog.String("addr", srv.http.Addr),
			slog.String("catalog_source", cfg.CatalogSource),
			slog.String("timezone", cfg.Location.String()),
		)
		if err := srv.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		return fmt.Errorf("server listen error: %w", err)
	}
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runMigrate はデータベースマイグレーションを実行する。
//   - up:     すべての未適用マイグレーションを順番に適用する
//   - down:   直近のマイグレーションを1つ戻す
//   - status: 適用済みバージョンを表示する
//   - seed:   組み込みカタログをDBに取り込む（既存カタログは置き換える）
func runMigrate(ctx context.Context, cfg *config.Config, args []string) error {
	action, err := ParseMigrateAction(args)
	if err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for migrate")
	}

	slog.Info("running database migrations",
		slog.String("action", string(action)),
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	switch action {
	case MigrateDown:
		if err := database.RollbackMigration(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	case MigrateStatus:
		version, dirty, err := database.MigrationVersion(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		slog.Info("migration status", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
		return nil
	case MigrateSeed:
		return importSeed(ctx, cfg)
	default:
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// importSeed は組み込みカタログをDBに取り込む。
func importSeed(ctx context.Context, cfg *config.Config) error {
	docs, err := catalog.SeedDocuments()
	if err != nil {
		return err
	}
	validator, err := catalog.NewValidator()
	if err != nil {
		return err
	}

	db, err := database.Connect(ctx, cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		return err
	}
	defer db.Close()

	return importCatalog(ctx, repository.NewPostgresListingRepo(db, validator, time.Now), docs)
}

// importCatalog はドキュメント列で既存カタログを置き換え、取り込み後の件数を記録する。
func importCatalog(ctx context.Context, importer repository.CatalogImporter, docs []json.RawMessage) error {
	n, err := importer.Import(ctx, docs)
	if err != nil {
		return fmt.Errorf("failed to import seed catalog: %w", err)
	}
	total, err := importer.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count catalog: %w", err)
	}

	slog.Info("seed catalog imported", slog.Int("listings", n), slog.Int("catalog_size", total))
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
