package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"storyfeed/internal/common/pagination"
	"storyfeed/internal/infra/cache"
	"storyfeed/internal/infra/db"
	"storyfeed/internal/repository"
	"storyfeed/pkg/config"

	pgRepo "storyfeed/internal/infra/adapter/persistence/postgres"
	"storyfeed/internal/observability/tracing"
	"storyfeed/internal/resilience/circuitbreaker"
	storyUC "storyfeed/internal/usecase/story"

	hhttp "storyfeed/internal/handler/http"
	"storyfeed/internal/handler/http/requestid"
	hstory "storyfeed/internal/handler/http/story"
)

// @title           Story Feed API
// @version         1.0
// @description     ストーリー閲覧 API。検索・カーソルページネーション付き一覧、
// @description     詳細取得、エンベディングによる類似ストーリー検索を提供します。

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := initLogger()
	database := initDatabase(logger)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	version := getVersion()
	components := setupServer(logger, database, version)

	runServer(logger, components, version)
}

// initLogger initializes and returns a structured logger based on environment configuration.
func initLogger() *slog.Logger {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the database connection and runs migrations.
func initDatabase(logger *slog.Logger) *sql.DB {
	database := db.Open()
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// initCacheStore selects the response cache backend. With REDIS_ADDR set the
// cache is shared across instances; otherwise each process keeps its own
// in-memory store, which is enough for a single replica.
func initCacheStore(logger *slog.Logger) cache.Store {
	addr := config.GetEnvString("REDIS_ADDR", "")
	if addr == "" {
		logger.Info("response cache: in-memory store")
		return cache.NewMemoryStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: config.GetEnvString("REDIS_PASSWORD", ""),
		DB:       config.GetEnvInt("REDIS_DB", 0),
	})

	store := cache.NewRedisStore(client)

	// The cache is fail-open, so a down Redis only costs latency. Log the
	// state at startup instead of refusing to boot.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		logger.Warn("response cache: redis unreachable at startup",
			slog.String("addr", addr),
			slog.Any("error", err))
	} else {
		logger.Info("response cache: redis", slog.String("addr", addr))
	}
	return store
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds components needed for server operation and cleanup.
type ServerComponents struct {
	Handler   http.Handler
	StoryRepo repository.StoryRepository
	Breaker   *circuitbreaker.DBCircuitBreaker
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, database *sql.DB, version string) *ServerComponents {
	breaker := circuitbreaker.NewDBCircuitBreaker(database)
	storyRepo := pgRepo.NewStoryRepo(breaker)
	storySvc := &storyUC.Service{Repo: storyRepo}

	store := initCacheStore(logger)
	cacheTTL := config.GetEnvDuration("STORY_CACHE_TTL", 30*time.Second)
	if err := config.ValidatePositiveDuration(cacheTTL); err != nil {
		logger.Warn("invalid STORY_CACHE_TTL, using default",
			slog.Any("error", err))
		cacheTTL = 30 * time.Second
	}

	listCfg := pagination.LoadFromEnv()
	similarCfg := pagination.LoadFromEnvPrefix("SIMILAR")

	logger.Info("pagination configured",
		slog.Int("list_default_page_size", listCfg.DefaultPageSize),
		slog.Int("list_max_page_size", listCfg.MaxPageSize),
		slog.Int("similar_default_page_size", similarCfg.DefaultPageSize),
		slog.Int("similar_max_page_size", similarCfg.MaxPageSize),
		slog.Duration("cache_ttl", cacheTTL),
	)

	mux := setupRoutes(database, store, version, storySvc, cacheTTL, listCfg, similarCfg, logger)
	handler := applyMiddleware(logger, mux)

	return &ServerComponents{
		Handler:   handler,
		StoryRepo: storyRepo,
		Breaker:   breaker,
	}
}

// setupRoutes registers all HTTP routes.
func setupRoutes(
	database *sql.DB,
	store cache.Store,
	version string,
	storySvc *storyUC.Service,
	cacheTTL time.Duration,
	listCfg, similarCfg pagination.Config,
	logger *slog.Logger,
) *http.ServeMux {
	mux := http.NewServeMux()

	hstory.Register(mux, storySvc, store, cacheTTL, listCfg, similarCfg, logger)

	// ヘルスチェックエンドポイント
	mux.Handle("/health", &hhttp.HealthHandler{DB: database, Cache: store, Version: version})
	mux.Handle("/ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("/live", &hhttp.LiveHandler{})
	mux.Handle("/metrics", hhttp.MetricsHandler())

	return mux
}

// applyMiddleware wraps the handler with the middleware chain.
// Applied in reverse order (innermost to outermost):
// request ID → tracing → recovery → logging → timeout → body limit → metrics.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)
	if err := config.ValidateDurationRange(requestTimeout, time.Second, 5*time.Minute); err != nil {
		logger.Warn("invalid REQUEST_TIMEOUT, using default",
			slog.Any("error", err))
		requestTimeout = 30 * time.Second
	}

	chain := handler
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	if config.GetEnvBool("TRACING_ENABLED", false) {
		chain = tracing.Middleware(chain)
	}
	chain = requestid.Middleware(chain)

	return chain
}

// startStoriesGauge periodically refreshes the stories_total gauge.
// The count query never sits on a request path, so a slow or failing
// refresh only leaves the gauge stale.
func startStoriesGauge(ctx context.Context, repo repository.StoryRepository, logger *slog.Logger) {
	interval := config.GetEnvDuration("STORIES_GAUGE_INTERVAL", 1*time.Minute)
	if err := config.ValidatePositiveDuration(interval); err != nil {
		logger.Warn("invalid STORIES_GAUGE_INTERVAL, using default",
			slog.Any("error", err))
		interval = 1 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refresh := func() {
		queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		start := time.Now()
		count, err := repo.Count(queryCtx)
		hhttp.RecordDBQuery("count_stories", time.Since(start))
		if err != nil {
			logger.Warn("stories gauge refresh failed", slog.Any("error", err))
			return
		}
		hhttp.UpdateStoriesTotal(count)
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refresh()
		}
	}
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, components *ServerComponents, version string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startStoriesGauge(ctx, components.StoryRepo, logger)

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", ":8080"),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...",
		slog.String("db_breaker_state", components.Breaker.State().String()))

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
