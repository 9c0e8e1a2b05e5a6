// Package main is the entrypoint for the Shanghai ledger dashboard server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/cympfh/shanghai/internal/cache"
	"github.com/cympfh/shanghai/internal/config"
	"github.com/cympfh/shanghai/internal/handler"
	"github.com/cympfh/shanghai/internal/journal"
	"github.com/cympfh/shanghai/internal/ledger"
	"github.com/cympfh/shanghai/internal/metrics"
	"github.com/cympfh/shanghai/internal/middleware"
	"github.com/cympfh/shanghai/internal/repository"
	"github.com/cympfh/shanghai/internal/server"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize the journal backend
	var (
		store       journal.Store
		repo        *repository.Repository
		journalAddr string
	)
	switch cfg.JournalBackend {
	case config.BackendLocal:
		repo, err = repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		store = repo
		journalAddr = redactURL(cfg.DatabaseURL)
		logger.Info("using local journal backend")
	default:
		client := journal.NewClient(cfg.JournalURL, cfg.JournalSection, cfg.SecretKey)
		store = client
		journalAddr = client.URL()
		logger.Info("using remote journal backend", "journal_url", client.URL())
	}
	if repo != nil {
		defer repo.Close()
	}

	// Initialize cache (optional)
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		defer cacheClient.Close()
		logger.Info("connected to Redis")
	}

	// Initialize services
	metricsRecorder := metrics.NewInMemory()
	ledgerService := ledger.NewService(
		store,
		cacheClient,
		cfg.JournalSection,
		cfg.CacheTTL,
		cfg.GetAccounts(),
		metricsRecorder,
	)

	// Initialize handlers
	h := handler.New()
	var cacheChecker handler.HealthChecker
	if cacheClient != nil {
		cacheChecker = cacheClient
	}
	healthHandler := handler.NewHealthHandler(store, cacheChecker)
	metricsHandler := handler.NewMetricsHandler(metricsRecorder)
	memoHandler := handler.NewMemoHandler(ledgerService, logger, cfg.BasePath)
	dashboardHandler := handler.NewDashboardHandler(ledgerService, logger, cfg.BasePath)

	// Setup router
	r := setupRouter(h, healthHandler, metricsHandler, memoHandler, dashboardHandler, cacheClient, metricsRecorder, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppHost,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"host", cfg.AppHost,
		"port", cfg.AppPort,
		"base_path", cfg.BasePath,
		"backend", cfg.JournalBackend,
		"journal", journalAddr,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	metricsHandler *handler.MetricsHandler,
	memoHandler *handler.MemoHandler,
	dashboardHandler *handler.DashboardHandler,
	cacheClient *cache.Cache,
	recorder metrics.Recorder,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.BodyLimit(cfg.MaxRequestBodySize))

	// Health endpoints (outside the base path)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/metrics", metricsHandler.Metrics)

	// Root info endpoint
	r.Get("/", h.Root)

	writeAuth := middleware.WriteAuth(middleware.WriteAuthConfig{
		Logger:    logger,
		TokenHash: cfg.WriteTokenHash,
	})

	rateLimit := middleware.RateLimitIP(middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Metrics: recorder,
		Enabled: cfg.RateLimitEnabled,
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
	})

	// Dashboard and API, mounted under the base path
	r.Route(cfg.BasePath, func(r chi.Router) {
		r.Get("/", dashboardHandler.Dashboard)
		r.With(writeAuth, rateLimit).Post("/memos", memoHandler.SubmitForm)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/entries", memoHandler.List)
			r.Get("/summary", memoHandler.Summary)
			r.With(writeAuth, rateLimit).Post("/entries", memoHandler.Create)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
