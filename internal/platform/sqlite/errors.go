package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlitedrv "modernc.org/sqlite"

	"github.com/phrazzld/qa-api/internal/store"
)

// MapError translates a database/sql or driver error into the store
// taxonomy. sql.ErrNoRows becomes the entity's not found error; everything
// else becomes a *store.StoreError whose Cause holds the original error.
func MapError(err error, entity, operation string) error {
	if err == nil {
		return nil
	}

	if store.KindOf(err) != store.KindOther || errors.Is(err, store.ErrOther) {
		return err
	}

	if errors.Is(err, sql.ErrNoRows) {
		return store.NotFoundFor(entity)
	}

	switch {
	case errors.Is(err, context.Canceled):
		return store.NewStoreError(entity, operation, "operation cancelled", err)
	case errors.Is(err, context.DeadlineExceeded):
		return store.NewStoreError(entity, operation, "operation timed out", err)
	}

	var sqliteErr *sqlitedrv.Error
	if errors.As(err, &sqliteErr) {
		return store.NewStoreError(entity, operation,
			fmt.Sprintf("database error (code %d)", sqliteErr.Code()), err)
	}

	return store.NewStoreError(entity, operation, "database error", err)
}

// CheckRowsAffected examines the number of rows affected by a DELETE and
// returns the entity's not found error when there were none.
func CheckRowsAffected(result sql.Result, entity string) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.NotFoundFor(entity)
	}
	return nil
}
