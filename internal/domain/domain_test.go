package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question Question
		wantErr  error
	}{
		{
			name:     "valid question",
			question: Question{Title: "some_title", Description: "some description"},
		},
		{
			name:     "empty description is allowed",
			question: Question{Title: "some_title"},
		},
		{
			name:     "empty title",
			question: Question{Description: "some description"},
			wantErr:  ErrEmptyTitle,
		},
		{
			name:     "blank title",
			question: Question{Title: "   ", Description: "some description"},
			wantErr:  ErrEmptyTitle,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.question.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errors.Is(err, ErrValidation), "error should wrap ErrValidation")
		})
	}
}

func TestAnswerValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Answer{QuestionUUID: "not-checked-here", Content: "some answer"}.Validate())

	err := Answer{Content: "some answer"}.Validate()
	assert.ErrorIs(t, err, ErrEmptyQuestionUUID)
	assert.ErrorIs(t, err, ErrValidation)
}
