package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/qa-api/internal/config"
	"github.com/phrazzld/qa-api/internal/platform/logger"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	backend *backend
}

// newApplication opens the configured backend and checks that its stores
// answer before the server starts accepting requests.
func newApplication(ctx context.Context, cfg *config.Config, appLogger *slog.Logger) (*application, error) {
	if appLogger == nil {
		appLogger = slog.Default()
	}

	b, err := openBackend(ctx, cfg.Database, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s backend: %w", cfg.Database.Backend, err)
	}

	app := &application{
		config:  cfg,
		logger:  appLogger,
		backend: b,
	}

	if err := app.probeStores(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	return app, nil
}

// probeStores lists the stored questions once and logs how many there are.
func (app *application) probeStores(ctx context.Context) error {
	ctx = logger.WithLogger(ctx, app.logger)

	questions, err := app.backend.stores.Questions.List(ctx)
	if err != nil {
		return fmt.Errorf("store readiness probe failed: %w", err)
	}

	app.logger.Info("stores ready",
		slog.String("backend", app.backend.name),
		slog.Int("questions", len(questions)))
	return nil
}

// cleanup releases the backend's resources. Calling it again is a no-op.
func (app *application) cleanup() {
	if app.backend == nil {
		return
	}
	app.backend.close()
	app.logger.Info("backend closed", slog.String("backend", app.backend.name))
	app.backend = nil
}
