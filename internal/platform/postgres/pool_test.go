package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/qa-api/internal/config"
	"github.com/phrazzld/qa-api/internal/platform/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoolRejectsMalformedURL(t *testing.T) {
	t.Parallel()

	pool, err := postgres.NewPool(context.Background(), config.DatabaseConfig{
		URL:             "postgres://qa:qa@localhost:notaport/qa",
		MaxConns:        5,
		MaxConnIdleTime: time.Minute,
	})

	require.Error(t, err)
	assert.Nil(t, pool)
	assert.Contains(t, err.Error(), "unable to parse database url")
}

func TestStoreConstructorsRejectNilPool(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { postgres.NewPostgresQuestionStore(nil, time.Second, nil) })
	assert.Panics(t, func() { postgres.NewPostgresAnswerStore(nil, time.Second, nil) })
}
