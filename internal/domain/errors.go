// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTitle is returned when a question is submitted without a title.
	ErrEmptyTitle = errors.New("question title cannot be empty")

	// ErrEmptyQuestionUUID is returned when an answer does not name its question.
	ErrEmptyQuestionUUID = errors.New("answer question_uuid cannot be empty")
)
