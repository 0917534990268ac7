package domain

import (
	"fmt"
	"strings"
	"time"
)

// Answer is the creation input for an answer record.
type Answer struct {
	QuestionUUID string `json:"question_uuid"`
	Content      string `json:"content"`
}

// Validate checks the fields that do not depend on the store. The format of
// QuestionUUID is checked by the store itself.
func (a Answer) Validate() error {
	if strings.TrimSpace(a.QuestionUUID) == "" {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyQuestionUUID)
	}
	return nil
}

// AnswerDetail is a stored answer.
type AnswerDetail struct {
	AnswerUUID   string    `json:"answer_uuid"`
	QuestionUUID string    `json:"question_uuid"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
}
