package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: KindNone,
		},
		{
			name:     "invalid identifier",
			err:      &InvalidIdentifierError{Value: "abc"},
			expected: KindInvalidIdentifier,
		},
		{
			name:     "wrapped invalid identifier",
			err:      fmt.Errorf("delete question: %w", &InvalidIdentifierError{Value: "abc"}),
			expected: KindInvalidIdentifier,
		},
		{
			name:     "ErrNotFound",
			err:      ErrNotFound,
			expected: KindNotFound,
		},
		{
			name:     "ErrQuestionNotFound",
			err:      ErrQuestionNotFound,
			expected: KindNotFound,
		},
		{
			name:     "ErrAnswerNotFound",
			err:      ErrAnswerNotFound,
			expected: KindNotFound,
		},
		{
			name:     "store error",
			err:      NewStoreError(EntityQuestion, "create", "database error", errors.New("boom")),
			expected: KindOther,
		},
		{
			name:     "unclassified error",
			err:      context.DeadlineExceeded,
			expected: KindOther,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", KindNone.String())
	assert.Equal(t, "invalid_identifier", KindInvalidIdentifier.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(errors.New("some error")))
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("failed to delete: %w", ErrQuestionNotFound)))
	assert.True(t, IsNotFoundError(ErrAnswerNotFound))
}

func TestNotFoundFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ErrQuestionNotFound, NotFoundFor(EntityQuestion))
	assert.Equal(t, ErrAnswerNotFound, NotFoundFor(EntityAnswer))
	assert.Equal(t, ErrNotFound, NotFoundFor("comment"))
}

func TestInvalidIdentifierError(t *testing.T) {
	t.Parallel()

	err := error(&InvalidIdentifierError{Value: "not-a-uuid"})

	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"not-a-uuid"`)

	var invalid *InvalidIdentifierError
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", err), &invalid))
	assert.Equal(t, "not-a-uuid", invalid.Value)
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused by 10.0.0.1:5432")
	err := NewStoreError(EntityAnswer, "list", "database error", cause)

	t.Run("message omits the cause", func(t *testing.T) {
		assert.Equal(t, "list operation on answer failed: database error", err.Error())
		assert.NotContains(t, err.Error(), "10.0.0.1")
	})

	t.Run("unwraps to ErrOther only", func(t *testing.T) {
		assert.ErrorIs(t, err, ErrOther)
		assert.NotErrorIs(t, err, cause)
	})

	t.Run("cause is available for logging", func(t *testing.T) {
		assert.Equal(t, cause, Cause(err))
		assert.Equal(t, cause, Cause(fmt.Errorf("outer: %w", err)))
	})

	t.Run("cause of plain errors is the error itself", func(t *testing.T) {
		plain := errors.New("plain")
		assert.Equal(t, plain, Cause(plain))
		assert.Nil(t, Cause(nil))
	})
}

func TestParseIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		canonical string
		wantErr   bool
	}{
		{
			name:      "canonical form",
			value:     "0b6f1c2e-3d4a-4b5c-8d9e-0f1a2b3c4d5e",
			canonical: "0b6f1c2e-3d4a-4b5c-8d9e-0f1a2b3c4d5e",
		},
		{
			name:      "upper case is normalized",
			value:     "0B6F1C2E-3D4A-4B5C-8D9E-0F1A2B3C4D5E",
			canonical: "0b6f1c2e-3d4a-4b5c-8d9e-0f1a2b3c4d5e",
		},
		{
			name:      "braced form",
			value:     "{0b6f1c2e-3d4a-4b5c-8d9e-0f1a2b3c4d5e}",
			canonical: "0b6f1c2e-3d4a-4b5c-8d9e-0f1a2b3c4d5e",
		},
		{name: "empty", value: "", wantErr: true},
		{name: "placeholder", value: "some_uuid", wantErr: true},
		{name: "truncated", value: "0b6f1c2e-3d4a-4b5c-8d9e", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, err := ParseIdentifier(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, KindInvalidIdentifier, KindOf(err))
				var invalid *InvalidIdentifierError
				require.ErrorAs(t, err, &invalid)
				assert.Equal(t, tt.value, invalid.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, id.String())
		})
	}
}
