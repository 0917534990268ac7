package ciutil

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/phrazzld/qa-api/internal/redact"
)

// Connection defaults of the PostgreSQL service container used in CI.
const (
	StandardCIUser     = "postgres"
	StandardCIPassword = "postgres"
	StandardCIPort     = "5432"
	StandardCIDatabase = "qa_test"
	StandardCIOptions  = "sslmode=disable"
)

// GetTestDatabaseURL returns the PostgreSQL URL integration tests connect
// to, checking DATABASE_URL, QA_TEST_DB_URL and QA_DATABASE_URL in that
// order. It returns "" when none is set.
//
// In CI the credentials are replaced by the service container's standard
// ones, and a missing port, database name or query string is filled in.
func GetTestDatabaseURL(logger *slog.Logger) string {
	dbURL := GetEnvWithFallbacks([]string{EnvDatabaseURL, EnvQATestDBURL, EnvQADatabaseURL}, "", logger)
	if dbURL == "" || !IsCI() {
		return dbURL
	}

	standardized, err := StandardizeDatabaseURL(dbURL)
	if err != nil {
		if logger != nil {
			logger.Error("Failed to standardize database URL",
				"error", err,
				"original_url", redact.URL(dbURL),
			)
		}
		return dbURL
	}

	if standardized != dbURL && logger != nil {
		logger.Info("Standardized database URL for CI environment",
			"original", redact.URL(dbURL),
			"standardized", redact.URL(standardized),
		)
	}
	return standardized
}

// StandardizeDatabaseURL rewrites a postgres URL to the CI credentials.
// URLs with another scheme are returned unchanged.
func StandardizeDatabaseURL(dbURL string) (string, error) {
	parsed, err := url.Parse(dbURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse database URL: %w", err)
	}
	if parsed.Scheme != "postgres" && parsed.Scheme != "postgresql" {
		return dbURL, nil
	}

	out := *parsed
	out.User = url.UserPassword(StandardCIUser, StandardCIPassword)

	if parsed.Port() == "" && parsed.Hostname() != "" {
		out.Host = parsed.Hostname() + ":" + StandardCIPort
	}
	if parsed.Path == "" || parsed.Path == "/" {
		out.Path = "/" + StandardCIDatabase
	}
	if parsed.RawQuery == "" {
		out.RawQuery = StandardCIOptions
	}

	return out.String(), nil
}
