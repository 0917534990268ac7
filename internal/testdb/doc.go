//go:build integration

// Package testdb provides helpers for tests that need a live PostgreSQL
// database.
//
// Tests using it carry the integration build tag and are skipped when no
// database URL is configured:
//
//	func TestSomething(t *testing.T) {
//	    pool := testdb.NewTestPool(t)
//	    testdb.ResetTables(t, pool)
//	    ...
//	}
//
// # Environment Variables
//
// - DATABASE_URL: Primary connection string
// - QA_TEST_DB_URL: Alternative connection string
package testdb
