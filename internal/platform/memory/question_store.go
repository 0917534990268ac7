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

// QuestionStore implements store.QuestionStore in process memory.
type QuestionStore struct {
	records *arena[domain.QuestionDetail]
	logger  *slog.Logger
}

// Ensure QuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*QuestionStore)(nil)

// NewQuestionStore creates an empty question store.
func NewQuestionStore(opts ...Option) *QuestionStore {
	o := newOptions(opts)
	return &QuestionStore{
		records: newArena[domain.QuestionDetail](o.clock),
		logger:  o.logger,
	}
}

// Create implements store.QuestionStore.Create.
func (s *QuestionStore) Create(ctx context.Context, question domain.Question) (domain.QuestionDetail, error) {
	if err := ctx.Err(); err != nil {
		return domain.QuestionDetail{}, store.NewStoreError(store.EntityQuestion, "create", "context done", err)
	}

	detail := s.records.insert(func(id uuid.UUID, createdAt time.Time) domain.QuestionDetail {
		return domain.QuestionDetail{
			QuestionUUID: id.String(),
			Title:        question.Title,
			Description:  question.Description,
			CreatedAt:    createdAt,
		}
	})

	logger.ForComponent(ctx, s.logger, "question_store").Debug("question created",
		slog.String("question_uuid", detail.QuestionUUID))
	return detail, nil
}

// List implements store.QuestionStore.List. Questions are returned in
// insertion order.
func (s *QuestionStore) List(ctx context.Context) ([]domain.QuestionDetail, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError(store.EntityQuestion, "list", "context done", err)
	}
	return s.records.snapshot(nil), nil
}

// Delete implements store.QuestionStore.Delete.
func (s *QuestionStore) Delete(ctx context.Context, questionUUID string) error {
	log := logger.ForComponent(ctx, s.logger, "question_store")

	id, err := store.ParseIdentifier(questionUUID)
	if err != nil {
		log.Debug("rejected malformed question identifier", slog.String("question_uuid", questionUUID))
		return err
	}
	if err := ctx.Err(); err != nil {
		return store.NewStoreError(store.EntityQuestion, "delete", "context done", err)
	}

	if !s.records.remove(id) {
		return store.ErrQuestionNotFound
	}

	log.Debug("question deleted", slog.String("question_uuid", id.String()))
	return nil
}

// Len returns the number of stored questions.
func (s *QuestionStore) Len() int {
	return s.records.len()
}
