package memory

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/qa-api/internal/domain"
	"github.com/phrazzld/qa-api/internal/platform/logger"
	"github.com/phrazzld/qa-api/internal/store"
)

// AnswerStore implements store.AnswerStore in process memory. It does not
// check that the referenced question exists.
type AnswerStore struct {
	records *arena[domain.AnswerDetail]
	logger  *slog.Logger
}

// Ensure AnswerStore implements store.AnswerStore interface
var _ store.AnswerStore = (*AnswerStore)(nil)

// NewAnswerStore creates an empty answer store.
func NewAnswerStore(opts ...Option) *AnswerStore {
	o := newOptions(opts)
	return &AnswerStore{
		records: newArena[domain.AnswerDetail](o.clock),
		logger:  o.logger,
	}
}

// Create implements store.AnswerStore.Create.
func (s *AnswerStore) Create(ctx context.Context, answer domain.Answer) (domain.AnswerDetail, error) {
	questionID, err := store.ParseIdentifier(answer.QuestionUUID)
	if err != nil {
		return domain.AnswerDetail{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.AnswerDetail{}, store.NewStoreError(store.EntityAnswer, "create", "context done", err)
	}

	detail := s.records.insert(func(id uuid.UUID, createdAt time.Time) domain.AnswerDetail {
		return domain.AnswerDetail{
			AnswerUUID:   id.String(),
			QuestionUUID: questionID.String(),
			Content:      answer.Content,
			CreatedAt:    createdAt,
		}
	})

	logger.ForComponent(ctx, s.logger, "answer_store").Debug("answer created",
		slog.String("answer_uuid", detail.AnswerUUID),
		slog.String("question_uuid", detail.QuestionUUID))
	return detail, nil
}

// ListByQuestion implements store.AnswerStore.ListByQuestion.
func (s *AnswerStore) ListByQuestion(ctx context.Context, questionUUID string) ([]domain.AnswerDetail, error) {
	questionID, err := store.ParseIdentifier(questionUUID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError(store.EntityAnswer, "list", "context done", err)
	}

	want := questionID.String()
	return s.records.snapshot(func(a domain.AnswerDetail) bool {
		return a.QuestionUUID == want
	}), nil
}

// Delete implements store.AnswerStore.Delete.
func (s *AnswerStore) Delete(ctx context.Context, answerUUID string) error {
	id, err := store.ParseIdentifier(answerUUID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return store.NewStoreError(store.EntityAnswer, "delete", "context done", err)
	}

	if !s.records.remove(id) {
		return store.ErrAnswerNotFound
	}

	logger.ForComponent(ctx, s.logger, "answer_store").Debug("answer deleted",
		slog.String("answer_uuid", id.String()))
	return nil
}

// Len returns the number of stored answers.
func (s *AnswerStore) Len() int {
	return s.records.len()
}

// NewStores creates a question store and an answer store sharing the given
// options.
func NewStores(opts ...Option) store.Stores {
	return store.Stores{
		Questions: NewQuestionStore(opts...),
		Answers:   NewAnswerStore(opts...),
	}
}
