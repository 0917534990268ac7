package api

import (
	"time"

	"github.com/phrazzld/qa-api/internal/domain"
)

// CreateQuestionRequest defines the payload for POST /question.
type CreateQuestionRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
}

func (r CreateQuestionRequest) toDomain() domain.Question {
	return domain.Question{Title: r.Title, Description: r.Description}
}

// QuestionIDRequest names a question, for DELETE /question and GET /answers.
type QuestionIDRequest struct {
	QuestionUUID string `json:"question_uuid" validate:"required"`
}

// CreateAnswerRequest defines the payload for POST /answer.
type CreateAnswerRequest struct {
	QuestionUUID string `json:"question_uuid" validate:"required"`
	Content      string `json:"content"`
}

func (r CreateAnswerRequest) toDomain() domain.Answer {
	return domain.Answer{QuestionUUID: r.QuestionUUID, Content: r.Content}
}

// AnswerIDRequest names an answer, for DELETE /answer.
type AnswerIDRequest struct {
	AnswerUUID string `json:"answer_uuid" validate:"required"`
}

// QuestionResponse is the JSON form of a stored question. CreatedAt is an
// RFC 3339 timestamp in UTC.
type QuestionResponse struct {
	QuestionUUID string `json:"question_uuid"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	CreatedAt    string `json:"created_at"`
}

// AnswerResponse is the JSON form of a stored answer.
type AnswerResponse struct {
	AnswerUUID   string `json:"answer_uuid"`
	QuestionUUID string `json:"question_uuid"`
	Content      string `json:"content"`
	CreatedAt    string `json:"created_at"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func questionToResponse(q domain.QuestionDetail) QuestionResponse {
	return QuestionResponse{
		QuestionUUID: q.QuestionUUID,
		Title:        q.Title,
		Description:  q.Description,
		CreatedAt:    formatTimestamp(q.CreatedAt),
	}
}

func questionsToResponse(questions []domain.QuestionDetail) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, questionToResponse(q))
	}
	return out
}

func answerToResponse(a domain.AnswerDetail) AnswerResponse {
	return AnswerResponse{
		AnswerUUID:   a.AnswerUUID,
		QuestionUUID: a.QuestionUUID,
		Content:      a.Content,
		CreatedAt:    formatTimestamp(a.CreatedAt),
	}
}

func answersToResponse(answers []domain.AnswerDetail) []AnswerResponse {
	out := make([]AnswerResponse, 0, len(answers))
	for _, a := range answers {
		out = append(out, answerToResponse(a))
	}
	return out
}
