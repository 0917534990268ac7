package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/qa-api/internal/config"
	"github.com/phrazzld/qa-api/internal/platform/memory"
	"github.com/phrazzld/qa-api/internal/platform/postgres"
	"github.com/phrazzld/qa-api/internal/platform/sqlite"
	"github.com/phrazzld/qa-api/internal/store"
)

// backend is an opened storage engine: its stores, a liveness check for
// /health and the function releasing its resources.
type backend struct {
	name   string
	stores store.Stores
	ping   func(ctx context.Context) error
	close  func()
}

// openBackend opens the storage engine selected by cfg.Backend and, when
// cfg.AutoSchema is set, creates the tables it needs.
func openBackend(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return &backend{
			name:   cfg.Backend,
			stores: memory.NewStores(memory.WithLogger(logger)),
			ping:   func(context.Context) error { return nil },
			close:  func() {},
		}, nil

	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.AutoSchema {
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		logger.Info("database connection established",
			slog.String("backend", cfg.Backend),
			slog.Int("max_conns", int(cfg.MaxConns)))
		return &backend{
			name:   cfg.Backend,
			stores: postgres.NewStores(pool, cfg.AcquireTimeout, logger),
			ping:   pool.Ping,
			close:  pool.Close,
		}, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		if cfg.AutoSchema {
			if err := sqlite.EnsureSchema(ctx, db); err != nil {
				db.Close()
				return nil, err
			}
		}
		logger.Info("database opened",
			slog.String("backend", cfg.Backend),
			slog.String("path", cfg.Path))
		return &backend{
			name:   cfg.Backend,
			stores: sqlite.NewStores(db, logger),
			ping:   db.PingContext,
			close: func() {
				if err := db.Close(); err != nil {
					logger.Error("failed to close database", slog.String("error", err.Error()))
				}
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database backend %q", cfg.Backend)
	}
}
