//go:build integration

package testdb

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/qa-api/internal/ciutil"
	"github.com/phrazzld/qa-api/internal/config"
	"github.com/phrazzld/qa-api/internal/platform/postgres"
	"github.com/phrazzld/qa-api/internal/redact"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment returns true if a test database URL is
// configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// GetTestDatabaseURL returns the database URL for tests, as resolved by
// ciutil.GetTestDatabaseURL.
func GetTestDatabaseURL() string {
	return ciutil.GetTestDatabaseURL(nil)
}

// TestDatabaseConfig returns the database configuration used by NewTestPool.
func TestDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Backend:         config.BackendPostgres,
		URL:             GetTestDatabaseURL(),
		MaxConns:        5,
		MaxConnIdleTime: time.Minute,
		AcquireTimeout:  TestTimeout,
		AutoSchema:      true,
	}
}

// NewTestPool connects to the test database, ensures the schema exists and
// registers the pool for closing when the test ends. The test is skipped
// when no database URL is configured.
func NewTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if !IsIntegrationTestEnvironment() {
		t.Skip("DATABASE_URL not set - skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	cfg := TestDatabaseConfig()
	pool, err := postgres.NewPool(ctx, cfg)
	require.NoError(t, err, "failed to connect to %s", redact.String(cfg.URL))
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.EnsureSchema(ctx, pool), "failed to ensure schema")
	return pool
}

// ResetTables removes every question and answer.
func ResetTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE questions, answers")
	require.NoError(t, err, "failed to truncate tables")
}
