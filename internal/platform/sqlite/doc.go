// Package sqlite provides embedded SQLite implementations of the store
// interfaces, using the pure Go modernc.org/sqlite driver. It suits single
// process deployments and local development where running PostgreSQL is not
// worth it.
package sqlite
