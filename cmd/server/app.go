package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/recallhq/recall-api/internal/config"
	"github.com/recallhq/recall-api/internal/domain/scheduler"
	"github.com/recallhq/recall-api/internal/platform/postgres"
	"github.com/recallhq/recall-api/internal/service/auth"
	"github.com/recallhq/recall-api/internal/service/study"
	"github.com/recallhq/recall-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	cardStore     store.CardStore
	deckStore     store.DeckStore
	progressStore store.ProgressStore
	priorityStore store.PriorityStore

	// Service interfaces
	jwtService   auth.JWTService
	studyService study.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize stores
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.deckStore = postgres.NewPostgresDeckStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.priorityStore = postgres.NewPostgresPriorityStore(db, logger)

	// Scheduler thresholds come from configuration.
	params := scheduler.NewParams(scheduler.ParamsConfig{
		DefaultPriority:    cfg.Scheduler.DefaultPriority,
		DueThresholdRatio:  cfg.Scheduler.DueThresholdRatio,
		WeakMasteryCeiling: cfg.Scheduler.WeakMasteryCeiling,
		MinExposures:       cfg.Scheduler.MinExposures,
		MasteryBoost:       cfg.Scheduler.MasteryBoost,
	})

	// Initialize study session service
	app.studyService = study.NewService(
		app.cardStore,
		app.deckStore,
		app.progressStore,
		app.priorityStore,
		params,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
