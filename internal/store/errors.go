package store

import (
	"errors"
	"fmt"
)

// Entity names used in store errors.
const (
	EntityQuestion = "question"
	EntityAnswer   = "answer"
)

// Common store errors used across all store implementations.
var (
	// ErrInvalidIdentifier is returned when a caller-supplied identifier is not
	// a well-formed UUID. The concrete error is an *InvalidIdentifierError
	// carrying the rejected value.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNotFound is returned when an operation addresses a record that does
	// not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrOther is returned for every other storage failure: lost connections,
	// constraint violations, cancelled contexts. The concrete error is a
	// *StoreError whose Cause is meant for logs only.
	ErrOther = errors.New("storage failure")

	// ErrQuestionNotFound indicates that the requested question does not exist in the store.
	ErrQuestionNotFound = fmt.Errorf("%w: question", ErrNotFound)

	// ErrAnswerNotFound indicates that the requested answer does not exist in the store.
	ErrAnswerNotFound = fmt.Errorf("%w: answer", ErrNotFound)
)

// Kind is the closed set of failure kinds a store may report.
type Kind int

const (
	// KindNone means no error.
	KindNone Kind = iota
	// KindInvalidIdentifier is a malformed identifier supplied by the caller.
	KindInvalidIdentifier
	// KindNotFound is a missing record.
	KindNotFound
	// KindOther is any underlying engine failure.
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidIdentifier:
		return "invalid_identifier"
	case KindNotFound:
		return "not_found"
	default:
		return "other"
	}
}

// KindOf classifies err. Errors that do not carry one of the store sentinels
// are classified as KindOther.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrInvalidIdentifier):
		return KindInvalidIdentifier
	case IsNotFoundError(err):
		return KindNotFound
	default:
		return KindOther
	}
}

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NotFoundFor returns the entity-specific not found error.
func NotFoundFor(entity string) error {
	switch entity {
	case EntityQuestion:
		return ErrQuestionNotFound
	case EntityAnswer:
		return ErrAnswerNotFound
	default:
		return ErrNotFound
	}
}

// InvalidIdentifierError reports an identifier that failed format validation.
type InvalidIdentifierError struct {
	Value string
}

// Error implements the error interface.
func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidIdentifier, e.Value)
}

// Is makes errors.Is(err, ErrInvalidIdentifier) report true.
func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// StoreError describes an engine failure. It unwraps to ErrOther only; the
// engine error is kept in Cause so it can be logged without becoming part of
// the error chain callers inspect.
type StoreError struct {
	Entity    string // The entity type (e.g., "question", "answer")
	Operation string // The operation that failed (e.g., "create", "list")
	Message   string // Error message
	Cause     error  // Original engine error, for logging
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns ErrOther to support errors.Is.
func (e *StoreError) Unwrap() error {
	return ErrOther
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and cause.
func NewStoreError(entity, operation, message string, cause error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Cause:     cause,
	}
}

// Cause returns the engine error behind err when err is a *StoreError, and
// err itself otherwise.
func Cause(err error) error {
	var storeErr *StoreError
	if errors.As(err, &storeErr) && storeErr.Cause != nil {
		return storeErr.Cause
	}
	return err
}
