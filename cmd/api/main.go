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

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/lojinha/inventory-be/internal/adapters/db"
	redis_a "github.com/lojinha/inventory-be/internal/adapters/redis_adapter"
	"github.com/lojinha/inventory-be/internal/core/services"
	"github.com/lojinha/inventory-be/internal/handlers"
	"github.com/lojinha/inventory-be/internal/handlers/middleware"
	"github.com/lojinha/inventory-be/internal/pkg/config"
	"github.com/lojinha/inventory-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("debug", "json")

	slogger.Info("starting inventory api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
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

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	if cfg.Database.RunMigrations {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			if cfg.IsProduction() {
				os.Exit(1)
			}
		}
	}

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()))
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
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

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
	database       *db.Database
	redisClient    *redis.Client
	redisCache     *redis_a.Cache
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector

	optionsHandler   *handlers.OptionsHandler
	stockHandler     *handlers.StockHandler
	salesHandler     *handlers.SalesHandler
	exchangesHandler *handlers.ExchangesHandler
	importHandler    *handlers.ImportHandler
	dashboardHandler *handlers.DashboardHandler
	healthHandler    *handlers.HealthHandler
}

func (d *dependencies) cleanup() {
	if d.database != nil {
		d.database.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
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
		StatementCacheMode: cfg.Database.StatementCacheMode,
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
		Addr:            fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
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

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)

	// Repositories
	optionRepo := db.NewOptionRepository(database, logger)
	unitRepo := db.NewUnitRepository(database, logger)
	saleRepo := db.NewSaleRepository(database, logger)
	exchangeRepo := db.NewExchangeRepository(database, logger)

	// Services
	registry := services.NewOptionRegistry(optionRepo, logger)
	ledger := services.NewLedger(unitRepo, registry, services.LedgerConfig{
		ResetReturnedFIFODate: cfg.Engine.ResetReturnedFIFODate,
	}, logger)
	saleManager := services.NewSaleManager(saleRepo, ledger, registry, logger)
	exchangeManager := services.NewExchangeManager(exchangeRepo, saleRepo, ledger, logger)
	importer := services.NewImporter(unitRepo, optionRepo, registry, services.ImporterConfig{
		MaxRowErrors: cfg.Import.MaxRowErrors,
	}, logger)

	// Handlers
	deps.optionsHandler = handlers.NewOptionsHandler(registry, logger)
	deps.stockHandler = handlers.NewStockHandler(ledger, logger)
	deps.salesHandler = handlers.NewSalesHandler(saleManager, logger)
	deps.exchangesHandler = handlers.NewExchangesHandler(exchangeManager, logger)

	maxFileSize := int64(cfg.Import.MaxUploadSizeMB) * 1024 * 1024
	deps.importHandler = handlers.NewImportHandler(
		importer,
		deps.asynqClient,
		deps.redisCache,
		logger,
		maxFileSize,
		cfg.Import.UploadDir,
	)

	deps.dashboardHandler = handlers.NewDashboardHandler(database, deps.redisCache, logger)
	deps.healthHandler = handlers.NewHealthHandler(database, redisClient, deps.asynqInspector, cfg, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	registerRoutes(mux, deps)

	// Apply middleware in reverse order (innermost first)
	var handler http.Handler = mux
	handler = middleware.SecureHeaders(handler)
	if len(cfg.Security.AllowedOrigins) > 0 {
		handler = middleware.CORS(cfg.Security.AllowedOrigins)(handler)
	}
	if cfg.Security.RateLimitRequests > 0 {
		handler = middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)(handler)
	}
	handler = middleware.Logger(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(handler)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handler,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func registerRoutes(mux *http.ServeMux, deps *dependencies) {
	apiV1 := "/api/v1"

	mux.HandleFunc("GET /health", deps.healthHandler.Health)
	mux.HandleFunc("GET /ready", deps.healthHandler.Readiness)

	// Field option registry
	mux.HandleFunc("GET "+apiV1+"/options", deps.optionsHandler.List)
	mux.HandleFunc("POST "+apiV1+"/options", deps.optionsHandler.Create)
	mux.HandleFunc("PATCH "+apiV1+"/options/{id}", deps.optionsHandler.Update)

	// Stock unit ledger
	mux.HandleFunc("GET "+apiV1+"/stock", deps.stockHandler.List)
	mux.HandleFunc("GET "+apiV1+"/stock/{id}", deps.stockHandler.Get)
	mux.HandleFunc("POST "+apiV1+"/stock/intake", deps.stockHandler.Intake)

	// Sales
	mux.HandleFunc("GET "+apiV1+"/sales", deps.salesHandler.List)
	mux.HandleFunc("POST "+apiV1+"/sales", deps.salesHandler.Create)
	mux.HandleFunc("GET "+apiV1+"/sales/{id}", deps.salesHandler.Get)
	mux.HandleFunc("POST "+apiV1+"/sales/{id}/payment", deps.salesHandler.ConfirmPayment)

	// Exchanges
	mux.HandleFunc("POST "+apiV1+"/exchanges", deps.exchangesHandler.Create)
	mux.HandleFunc("GET "+apiV1+"/exchanges/{id}", deps.exchangesHandler.Get)

	// Bulk import
	mux.HandleFunc("POST "+apiV1+"/import", deps.importHandler.ImportRows)
	mux.HandleFunc("POST "+apiV1+"/import/spreadsheet", deps.importHandler.ImportSpreadsheet)
	mux.HandleFunc("GET "+apiV1+"/import/status/{jobId}", deps.importHandler.JobStatus)

	// Dashboard
	mux.HandleFunc("GET "+apiV1+"/dashboard", deps.dashboardHandler.GetDashboard)
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	migrationConfig := &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}

	return db.RunMigrationsWithRetry(ctx, migrationConfig, logger, 3)
}
