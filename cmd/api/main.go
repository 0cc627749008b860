package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/sync/errgroup"

	"game-history/internal/config"
	"game-history/internal/infra/store"
	"game-history/internal/observability/logging"
	"game-history/internal/observability/tracing"
	"game-history/internal/resilience/circuitbreaker"
	histUC "game-history/internal/usecase/gamehistory"

	hhttp "game-history/internal/handler/http"
	hauth "game-history/internal/handler/http/auth"
	hgame "game-history/internal/handler/http/gamehistory"
	"game-history/internal/handler/http/requestid"

	_ "game-history/docs" // swagger docs
)

// @title           Game History API
// @version         1.0
// @description     対戦結果の記録とプレイヤーごとの対戦履歴（カーソルページネーション）を提供する REST API

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT トークンによる認証。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	configPath := flag.String("config", os.Getenv("CONFIG_FILE"), "path to YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)
	validateJWTSecret(logger, cfg.Auth.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	version := getVersion()
	cfg.Tracing.Version = version
	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		logger.Error("failed to initialise tracing", slog.Any("error", err))
		os.Exit(1)
	}

	backend, closeStore, err := store.Open(ctx, logger, cfg.Store)
	if err != nil {
		logger.Error("failed to initialise record store",
			slog.String("backend", cfg.Store.Backend),
			slog.Any("error", err))
		os.Exit(1)
	}

	components := setupServer(logger, cfg, backend, version)
	runErr := runServer(ctx, logger, cfg.Server, components, version)

	cleanupCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := closeStore(cleanupCtx); err != nil {
		logger.Error("failed to close record store", slog.Any("error", err))
	}
	if err := shutdownTracing(cleanupCtx); err != nil {
		logger.Error("failed to flush traces", slog.Any("error", err))
	}
	if runErr != nil {
		logger.Error("server failed", slog.Any("error", runErr))
		os.Exit(1)
	}
}

// initLogger initializes and returns a structured logger based on configuration.
func initLogger(cfg config.LogConfig) *slog.Logger {
	logger := logging.NewLogger(os.Stdout, cfg.Level, cfg.Format)
	slog.SetDefault(logger)
	return logger
}

// validateJWTSecret refuses to start with a missing or weak signing secret.
func validateJWTSecret(logger *slog.Logger, secret string) {
	if err := hauth.ValidateSecret(secret); err != nil {
		logger.Error("JWT_SECRET validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	return version
}

// ServerComponents holds components needed for server operation.
type ServerComponents struct {
	Handler     http.Handler
	RateLimiter *hhttp.RateLimiter
}

// setupServer configures and returns the HTTP handler with all routes and middleware.
func setupServer(logger *slog.Logger, cfg config.Config, backend store.Backend, version string) *ServerComponents {
	guarded := circuitbreaker.NewRepository(backend, cfg.CircuitBreaker)

	svc := &histUC.Service{
		Repo:         guarded,
		Pagination:   cfg.Pagination,
		QueryTimeout: cfg.Store.QueryTimeout,
		Backend:      cfg.Store.Backend,
	}

	mux := http.NewServeMux()

	// ヘルスチェックエンドポイント（認証不要）
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Store:   guarded,
		Breaker: guarded.Breaker(),
		Backend: cfg.Store.Backend,
		Version: version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Store: guarded})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hgame.Register(mux, svc, cfg.Pagination, logger)

	var limiter *hhttp.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = hhttp.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		logger.Info("rate limiting initialized",
			slog.Float64("requests_per_second", cfg.RateLimit.RequestsPerSecond),
			slog.Int("burst", cfg.RateLimit.Burst))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	authz := hauth.Authz(hauth.Config{
		Secret:       []byte(cfg.Auth.JWTSecret),
		ProtectReads: cfg.Auth.ProtectReads,
	})

	return &ServerComponents{
		Handler:     applyMiddleware(logger, mux, cfg.Server.MaxBodyBytes, limiter, authz),
		RateLimiter: limiter,
	}
}

// applyMiddleware wraps the handler with middleware chain.
// Middleware order: Request ID → Tracing → Recovery → Logging → Metrics → Input validation → Rate Limit → Auth
func applyMiddleware(
	logger *slog.Logger,
	handler http.Handler,
	maxBodyBytes int64,
	limiter *hhttp.RateLimiter,
	authz func(http.Handler) http.Handler,
) http.Handler {
	// Apply in reverse order (innermost to outermost)
	chain := authz(handler)
	if limiter != nil {
		chain = limiter.Limit(chain)
	}
	chain = hhttp.InputValidation(maxBodyBytes)(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)
	return chain
}

// runServer serves until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg config.ServerConfig, components *ServerComponents, version string) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.ReadTimeout, // Prevent Slowloris attacks
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		// In-flight requests survive the signal; Shutdown drains them.
		BaseContext: func(_ net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}

