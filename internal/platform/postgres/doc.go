// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store. Every operation acquires one
// connection from a pgxpool.Pool and releases it before returning, and every
// engine failure is translated into the store error taxonomy by MapError.
package postgres
