package store

import (
	"context"

	"github.com/phrazzld/qa-api/internal/domain"
)

// QuestionStore defines the interface for question persistence.
type QuestionStore interface {
	// Create assigns a fresh identifier and creation time, persists the
	// question and returns the stored record.
	// Returns an ErrOther error if the write fails.
	Create(ctx context.Context, question domain.Question) (domain.QuestionDetail, error)

	// List returns every stored question. The result is an empty, non-nil
	// slice when there are none.
	List(ctx context.Context) ([]domain.QuestionDetail, error)

	// Delete permanently removes a question.
	// Returns an ErrInvalidIdentifier error if questionUUID is malformed and
	// ErrQuestionNotFound if no such question exists; the store is unchanged
	// in both cases. Answers of the question are left in place.
	Delete(ctx context.Context, questionUUID string) error
}
