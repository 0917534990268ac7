package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/qa-api/internal/domain"
	"github.com/phrazzld/qa-api/internal/platform/logger"
	"github.com/phrazzld/qa-api/internal/platform/memory"
	"github.com/phrazzld/qa-api/internal/store"
	"github.com/phrazzld/qa-api/internal/store/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConformance(t *testing.T) {
	t.Parallel()

	storetest.Run(t, func(t *testing.T) store.Stores {
		return memory.NewStores()
	}, storetest.Options{InsertionOrder: true, Concurrency: 64})
}

// backwardsClock returns each of times in turn.
func backwardsClock(times ...time.Time) memory.Clock {
	i := 0
	return func() time.Time {
		ts := times[i%len(times)]
		i++
		return ts
	}
}

func TestCreatedAtNeverGoesBackwards(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s := memory.NewQuestionStore(memory.WithClock(backwardsClock(
		base,
		base.Add(-time.Hour),
		base.Add(time.Minute),
	)))

	ctx := context.Background()
	first, err := s.Create(ctx, domain.Question{Title: "a"})
	require.NoError(t, err)
	second, err := s.Create(ctx, domain.Question{Title: "b"})
	require.NoError(t, err)
	third, err := s.Create(ctx, domain.Question{Title: "c"})
	require.NoError(t, err)

	assert.Equal(t, base, first.CreatedAt)
	assert.Equal(t, base, second.CreatedAt, "clock skew must be clamped")
	assert.Equal(t, base.Add(time.Minute), third.CreatedAt)
}

func TestCreatedAtIsUTC(t *testing.T) {
	t.Parallel()

	local := time.Date(2026, 5, 6, 7, 8, 9, 0, time.FixedZone("UTC+2", 2*60*60))
	s := memory.NewAnswerStore(memory.WithClock(func() time.Time { return local }))

	detail, err := s.Create(context.Background(), domain.Answer{QuestionUUID: uuid.NewString(), Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, detail.CreatedAt.Location())
	assert.True(t, local.Equal(detail.CreatedAt))
}

func TestStoresAreIndependent(t *testing.T) {
	t.Parallel()

	a := memory.NewQuestionStore()
	b := memory.NewQuestionStore()

	_, err := a.Create(context.Background(), domain.Question{Title: "only in a"})
	require.NoError(t, err)

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, b.Len())
}

func TestLenTracksDeletes(t *testing.T) {
	t.Parallel()

	s := memory.NewAnswerStore()
	ctx := context.Background()

	detail, err := s.Create(ctx, domain.Answer{QuestionUUID: uuid.NewString(), Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, detail.AnswerUUID))
	assert.Equal(t, 0, s.Len())
}

func TestLogsThroughContextLogger(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger(t)
	ctx := logger.WithLogger(context.Background(), log.With("trace_id", "abc123"))

	stores := memory.NewStores()
	detail, err := stores.Questions.Create(ctx, domain.Question{Title: "logged"})
	require.NoError(t, err)
	answer, err := stores.Answers.Create(ctx, domain.Answer{QuestionUUID: detail.QuestionUUID, Content: "logged"})
	require.NoError(t, err)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "question created", entries[0]["msg"])
	assert.Equal(t, detail.QuestionUUID, entries[0]["question_uuid"])
	assert.Equal(t, "question_store", entries[0]["component"], "context logger keeps the store component")
	assert.Equal(t, "abc123", entries[0]["trace_id"])

	assert.Equal(t, "answer created", entries[1]["msg"])
	assert.Equal(t, answer.AnswerUUID, entries[1]["answer_uuid"])
	assert.Equal(t, "answer_store", entries[1]["component"])
	assert.Equal(t, "abc123", entries[1]["trace_id"])
}

func TestLogsThroughStoreLoggerWithoutContextLogger(t *testing.T) {
	t.Parallel()

	log, buf := logger.NewTestLogger(t)
	s := memory.NewQuestionStore(memory.WithLogger(log))

	_, err := s.Create(context.Background(), domain.Question{Title: "logged"})
	require.NoError(t, err)

	entries, err := buf.GetLogEntries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "question_store", entries[0]["component"])
}
