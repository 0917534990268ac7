package store

import (
	"context"

	"github.com/phrazzld/qa-api/internal/domain"
)

// AnswerStore defines the interface for answer persistence.
type AnswerStore interface {
	// Create persists an answer for the question named by answer.QuestionUUID.
	// Returns an ErrInvalidIdentifier error, without persisting anything, if
	// that identifier is malformed.
	Create(ctx context.Context, answer domain.Answer) (domain.AnswerDetail, error)

	// ListByQuestion returns the answers belonging to questionUUID. The result
	// is an empty, non-nil slice when there are none.
	ListByQuestion(ctx context.Context, questionUUID string) ([]domain.AnswerDetail, error)

	// Delete permanently removes an answer.
	// Returns an ErrInvalidIdentifier error if answerUUID is malformed and
	// ErrAnswerNotFound if no such answer exists.
	Delete(ctx context.Context, answerUUID string) error
}

// Stores bundles the two stores of one backend.
type Stores struct {
	Questions QuestionStore
	Answers   AnswerStore
}
