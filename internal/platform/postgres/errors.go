package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/qa-api/internal/store"
)

// PostgreSQL error codes
const (
	// invalidTextRepresentationCode is raised when text such as a uuid cannot
	// be parsed into the column type.
	invalidTextRepresentationCode = "22P02"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"
)

// MapError translates an engine error into the store taxonomy:
//   - pgx.ErrNoRows and foreign key violations become the entity's not found error
//   - 22P02 (malformed uuid text) becomes a *store.InvalidIdentifierError
//   - everything else, cancelled contexts included, becomes a *store.StoreError
//
// The returned error never wraps the engine error; it is available through
// store.Cause for logging. Errors already in the taxonomy pass through.
func MapError(err error, entity, operation string) error {
	if err == nil {
		return nil
	}

	if store.KindOf(err) != store.KindOther || errors.Is(err, store.ErrOther) {
		return err
	}

	switch {
	case IsNotFoundError(err), IsForeignKeyViolation(err):
		return store.NotFoundFor(entity)
	case errors.Is(err, context.Canceled):
		return store.NewStoreError(entity, operation, "operation cancelled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return store.NewStoreError(entity, operation, "operation timed out", err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return store.NewStoreError(entity, operation, "database error", err)
	}

	switch {
	case IsInvalidTextRepresentation(err):
		return &store.InvalidIdentifierError{Value: rejectedValue(pgErr.Message)}
	case IsUniqueViolation(err):
		return store.NewStoreError(entity, operation, "duplicate identifier", err)
	default:
		return store.NewStoreError(entity, operation,
			fmt.Sprintf("database error (SQLSTATE %s)", pgErr.Code), err)
	}
}

// rejectedValue extracts the quoted input from a 22P02 message such as
// `invalid input syntax for type uuid: "abc"`. Messages without a trailing
// quoted value yield "".
func rejectedValue(message string) string {
	i := strings.LastIndex(message, ": ")
	if i < 0 {
		return ""
	}
	quoted := message[i+2:]
	if len(quoted) < 2 || quoted[0] != '"' || quoted[len(quoted)-1] != '"' {
		return ""
	}
	return quoted[1 : len(quoted)-1]
}

// IsInvalidTextRepresentation reports whether err is a PostgreSQL 22P02 error.
func IsInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsNotFoundError checks if the given error represents a "not found" scenario.
// This handles both pgx.ErrNoRows and errors that are or wrap store.ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || store.IsNotFoundError(err)
}

// CheckRowsAffected returns the entity's not found error when tag reports
// that no rows were touched.
func CheckRowsAffected(tag pgconn.CommandTag, entity string) error {
	if tag.RowsAffected() == 0 {
		return store.NotFoundFor(entity)
	}
	return nil
}
