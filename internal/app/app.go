package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"menu-analytics/internal/geoip"
	internalhttp "menu-analytics/internal/http"
	"menu-analytics/internal/ingestors"
	"menu-analytics/internal/reports"
	"menu-analytics/internal/shared/configs"
	"menu-analytics/internal/shared/loggers"
	"menu-analytics/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	db          *sql.DB
	geoResolver *geoip.DBResolver
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "menu-analytics").
		Logger()

	// Initialize database pool
	db, err := sql.Open("postgres", config.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(config.Database.MaxOpenConns)
	db.SetMaxIdleConns(config.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(config.Database.ConnMaxLifetime) * time.Minute)

	// Initialize geoip enrichment (optional)
	geoResolver, err := geoip.NewResolver(config.GeoIP.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database: %w", err)
	}

	// Initialize stores
	eventStore := stores.NewEventStore(db)
	rollupStore := stores.NewRollupStore(db)
	translationStore := stores.NewTranslationStore(db)

	// Initialize services
	var resolver geoip.Resolver
	if geoResolver != nil {
		resolver = geoResolver
	}
	ingestionService := ingestors.NewIngestionService(eventStore, resolver)
	reportService := reports.NewReportService(
		rollupStore,
		eventStore,
		translationStore,
		config.Analytics.DefaultLanguage,
		config.Analytics.DefaultTop,
	)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(ingestionService, reportService, config.Auth.JWTSecret, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:      config,
		appLogger:   appLogger,
		server:      server,
		db:          db,
		geoResolver: geoResolver,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting menu-analytics service on port %d (log_level=%s, geoip_enabled=%t)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.geoResolver != nil)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	// 2) Close database pool
	if err := app.db.Close(); err != nil {
		return fmt.Errorf("database close failed: %w", err)
	}
	app.appLogger.Info().Msg("Database pool closed")

	// 3) Close geoip reader
	if app.geoResolver != nil {
		if err := app.geoResolver.Close(); err != nil {
			return fmt.Errorf("geoip close failed: %w", err)
		}
	}

	return nil
}
