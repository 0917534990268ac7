// Package main implements the entry point for the question/answer API
// server, which stores questions and their answers in memory, SQLite or
// PostgreSQL and serves them over HTTP.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/qa-api/internal/config"
	"github.com/phrazzld/qa-api/internal/platform/logger"
	"github.com/phrazzld/qa-api/internal/redact"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// run loads configuration, builds the application and serves until ctx is
// cancelled.
func run(ctx context.Context) error {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	logConfiguration(appLogger, cfg)

	app, err := newApplication(ctx, cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

// logConfiguration logs the effective configuration without secrets.
func logConfiguration(log *slog.Logger, cfg *config.Config) {
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("log_format", cfg.Server.LogFormat),
		slog.Any("allowed_origins", cfg.Server.AllowedOrigins),
		slog.Duration("request_timeout", cfg.Server.RequestTimeout))

	attrs := []any{slog.String("backend", cfg.Database.Backend)}
	switch cfg.Database.Backend {
	case config.BackendPostgres:
		attrs = append(attrs,
			slog.String("url", redact.URL(cfg.Database.URL)),
			slog.Int("max_conns", int(cfg.Database.MaxConns)),
			slog.Duration("acquire_timeout", cfg.Database.AcquireTimeout))
	case config.BackendSQLite:
		attrs = append(attrs, slog.String("path", cfg.Database.Path))
	}
	attrs = append(attrs, slog.Bool("auto_schema", cfg.Database.AutoSchema))
	log.Info("database configuration loaded", attrs...)
}
