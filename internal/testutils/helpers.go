package testutils

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertCloseNoError ensures that the Close() method on the provided closer
// executes without error. It uses assert.NoError to allow subsequent defers
// to run even if this one fails.
//
// Usage:
//
//	db, err := sqlite.Open(ctx, path)
//	require.NoError(t, err)
//	defer testutils.AssertCloseNoError(t, db)
func AssertCloseNoError(t *testing.T, closer io.Closer) {
	t.Helper()
	if closer == nil {
		return
	}
	err := closer.Close()
	assert.NoError(t, err, "Deferred Close() failed for %T", closer)
}
