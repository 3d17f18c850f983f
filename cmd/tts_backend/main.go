package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tempushq/timesheet_backend/internal/adapters/database/pgsql"
	"github.com/tempushq/timesheet_backend/internal/adapters/notify"
	"github.com/tempushq/timesheet_backend/internal/adapters/pms/mongodb"
	"github.com/tempushq/timesheet_backend/internal/adapters/settings"
	portsrepo "github.com/tempushq/timesheet_backend/internal/core/ports/repositories"
	"github.com/tempushq/timesheet_backend/internal/core/services"
	"github.com/tempushq/timesheet_backend/internal/handlers"
	"github.com/tempushq/timesheet_backend/internal/middleware"
	"github.com/tempushq/timesheet_backend/internal/realtime"
	"github.com/tempushq/timesheet_backend/pkg/config"
	"github.com/tempushq/timesheet_backend/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// The PMS is an external store; startup proceeds even when it is down and
	// the gateway degrades reads to empty results.
	mongoClient, err := database.NewMongoClient(ctx, cfg.PMSMongoURI)
	if err != nil {
		logger.Error("Failed to initialize PMS mongo client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error("Error disconnecting PMS mongo client", slog.String("error", err.Error()))
		}
	}()

	location := cfg.Location()
	hub := realtime.NewHub(logger)

	var notifier portsrepo.Notifier
	if cfg.SMTPHost != "" {
		notifier = notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	container := services.NewServiceContainer(services.ContainerDeps{
		EntryRepo:    pgsql.NewTimeEntryRepository(dbPool),
		LedgerRepo:   pgsql.NewPostponementRepository(dbPool),
		EmployeeRepo: pgsql.NewEmployeeRepository(dbPool),
		SettingsRepo: settings.NewFileStore(cfg.SettingsFilePath),
		PMS:          mongodb.NewGateway(mongoClient.Database(cfg.PMSMongoDatabase), logger),
		Notifier:     notifier,
		Broadcaster:  hub,
		Location:     location,
	})

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if rate, err := limiter.NewRateFromFormatted(cfg.RateLimit); err != nil {
		logger.Warn("Invalid RATE_LIMIT, rate limiting disabled", slog.String("error", err.Error()))
	} else {
		r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container, hub, location)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serverErr <- srv.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	case <-stopCtx.Done():
	}

	logger.Info("Shutdown signal received, draining requests", slog.Duration("timeout", cfg.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown did not complete", slog.String("error", err.Error()))
		_ = srv.Close()
	}
	if err := <-serverErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
	}
}

// runMigrations applies pending "up" migrations over a temporary stdlib
// connection compatible with the main pgx pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
