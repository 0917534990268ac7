package domain

import (
	"fmt"
	"strings"
	"time"
)

// Question is the creation input for a question record. It has no identity
// until a store assigns one.
type Question struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Validate checks that the question can be stored.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyTitle)
	}
	return nil
}

// QuestionDetail is a stored question. QuestionUUID and CreatedAt are assigned
// by the store at creation time and never change afterwards.
type QuestionDetail struct {
	QuestionUUID string    `json:"question_uuid"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
}
