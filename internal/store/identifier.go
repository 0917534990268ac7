package store

import "github.com/google/uuid"

// ParseIdentifier validates a caller-supplied identifier. Any form accepted by
// uuid.Parse is well-formed; the returned UUID's String() is the canonical
// representation stored and returned by every backend.
func ParseIdentifier(value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, &InvalidIdentifierError{Value: value}
	}
	return id, nil
}
