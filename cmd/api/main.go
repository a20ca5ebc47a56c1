// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/adapters/db"
	redis_a "github.com/codewithdeepika/hybrid-seed-inventory/internal/adapters/redis_adapter"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/domain"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/ports"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/services"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/handlers"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/handlers/middleware"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/pkg/config"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting seed inventory bookkeeping service",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	deps, err := initializeDependencies(ctx, cfg, slogger.Logger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	// The service cannot run against a datastore without its tables, so a
	// failure here is fatal.
	if err := db.EnsureSchemaWithRetry(ctx, deps.database, slogger.Logger, cfg.Database.SchemaMaxRetries); err != nil {
		slogger.Error("failed to ensure ledger schema", slog.String("error", err.Error()))
		// os.Exit skips deferred calls, so release connections here.
		deps.cleanup()
		os.Exit(1)
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
		)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received",
			slog.String("signal", sig.String()),
		)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds all application dependencies
type dependencies struct {
	database    *db.Database
	redisClient *redis.Client
	redisCache  ports.CacheRepository

	inwardHandler  *handlers.EntryHandler[domain.InwardEntry]
	outwardHandler *handlers.EntryHandler[domain.OutwardEntry]
	returnsHandler *handlers.EntryHandler[domain.ReturnEntry]
	expiryHandler  *handlers.EntryHandler[domain.ExpiryEntry]
	reportHandler  *handlers.ReportHandler
	exportHandler  *handlers.ExportHandler
	healthHandler  *handlers.HealthHandler
	staticHandler  *handlers.StaticHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)

	database, err := db.NewDatabase(ctx, &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis",
		slog.String("host", cfg.Redis.Host),
		slog.String("port", cfg.Redis.Port),
	)

	redisClient := redis.NewClient(&redis.Options{
		Addr:            cfg.GetRedisAddress(),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient
	deps.redisCache = redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	// Repositories, one per ledger table
	inwardRepo := db.NewEntryRepository(database, db.InwardTable(), logger)
	outwardRepo := db.NewEntryRepository(database, db.OutwardTable(), logger)
	returnsRepo := db.NewEntryRepository(database, db.ReturnsTable(), logger)
	expiryRepo := db.NewEntryRepository(database, db.ExpiryTable(), logger)

	// Services
	inwardService := services.NewEntryService(domain.LedgerInward, inwardRepo, deps.redisCache, logger)
	outwardService := services.NewEntryService(domain.LedgerOutward, outwardRepo, deps.redisCache, logger)
	returnsService := services.NewEntryService(domain.LedgerReturns, returnsRepo, deps.redisCache, logger)
	expiryService := services.NewEntryService(domain.LedgerExpiry, expiryRepo, deps.redisCache, logger)
	reportService := services.NewReportService(
		inwardRepo, outwardRepo, returnsRepo, expiryRepo,
		deps.redisCache, cfg.Redis.ReportTTL, logger,
	)

	// Handlers
	deps.inwardHandler = handlers.NewEntryHandler(domain.LedgerInward, inwardService, logger)
	deps.outwardHandler = handlers.NewEntryHandler(domain.LedgerOutward, outwardService, logger)
	deps.returnsHandler = handlers.NewEntryHandler(domain.LedgerReturns, returnsService, logger)
	deps.expiryHandler = handlers.NewEntryHandler(domain.LedgerExpiry, expiryService, logger)
	deps.reportHandler = handlers.NewReportHandler(reportService, logger)
	deps.exportHandler = handlers.NewExportHandler(reportService, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, cfg, logger)
	deps.staticHandler = handlers.NewStaticHandler(cfg.Static.Dir, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, slogger *logger.Logger) *http.Server {
	mux := http.NewServeMux()

	registerRoutes(mux, deps)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux

	handler = middleware.Timeout(cfg.Server.RequestTimeout)(handler)

	if cfg.App.Environment != "test" {
		handler = middleware.Recovery(slogger.Logger)(handler)
		handler = middleware.Logger(slogger)(handler)
		handler = middleware.RequestID(handler)
	}

	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}

	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}

	if cfg.Security.SecureHeaders {
		handler = middleware.SecureHeaders(handler)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	// Health and readiness endpoints
	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)

	// Ledger endpoints
	registerLedgerRoutes(mux, domain.LedgerInward, deps.inwardHandler)
	registerLedgerRoutes(mux, domain.LedgerOutward, deps.outwardHandler)
	registerLedgerRoutes(mux, domain.LedgerReturns, deps.returnsHandler)
	registerLedgerRoutes(mux, domain.LedgerExpiry, deps.expiryHandler)

	// Report endpoints
	mux.HandleFunc("GET /api/reports", deps.reportHandler.Combined)
	mux.HandleFunc("GET /api/reports/export", deps.exportHandler.Export)

	// Static shell fallback for everything else
	mux.HandleFunc("GET /", deps.staticHandler.Serve)
}

func registerLedgerRoutes[E domain.Entry](mux *http.ServeMux, ledger domain.Ledger, h *handlers.EntryHandler[E]) {
	prefix := "/api/" + string(ledger)
	mux.HandleFunc("POST "+prefix, h.Create)
	mux.HandleFunc("GET "+prefix, h.List)
	mux.HandleFunc("DELETE "+prefix+"/{id}", h.Delete)
}
