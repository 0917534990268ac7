package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/qa-api/internal/api"
	"github.com/phrazzld/qa-api/internal/api/shared"
	"github.com/phrazzld/qa-api/internal/domain"
	"github.com/phrazzld/qa-api/internal/platform/memory"
	"github.com/phrazzld/qa-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(stores store.Stores) http.Handler {
	questions := api.NewQuestionHandler(stores.Questions, nil)
	answers := api.NewAnswerHandler(stores.Answers, nil)

	r := chi.NewRouter()
	r.Post("/question", questions.CreateQuestion)
	r.Get("/questions", questions.ListQuestions)
	r.Delete("/question", questions.DeleteQuestion)
	r.Post("/answer", answers.CreateAnswer)
	r.Get("/answers", answers.ListAnswers)
	r.Delete("/answer", answers.DeleteAnswer)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body: %s", w.Body.String())
	return v
}

func TestQuestionLifecycle(t *testing.T) {
	t.Parallel()

	h := newRouter(memory.NewStores())

	// empty questions
	w := do(t, h, http.MethodGet, "/questions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]\n", w.Body.String(), "an empty store lists as an empty array")

	// post question
	w = do(t, h, http.MethodPost, "/question", `{"title":"some_title","description":"some description"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	detail := decode[api.QuestionResponse](t, w)
	assert.Equal(t, "some_title", detail.Title)
	assert.Equal(t, "some description", detail.Description)
	_, err := uuid.Parse(detail.QuestionUUID)
	assert.NoError(t, err)
	_, err = time.Parse(time.RFC3339Nano, detail.CreatedAt)
	assert.NoError(t, err, "created_at should be RFC 3339")

	w = do(t, h, http.MethodGet, "/questions", "")
	listed := decode[[]api.QuestionResponse](t, w)
	require.Len(t, listed, 1)
	assert.Equal(t, detail, listed[0])

	// delete question
	w = do(t, h, http.MethodDelete, "/question", `{"question_uuid":"`+detail.QuestionUUID+`"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/questions", "")
	assert.Empty(t, decode[[]api.QuestionResponse](t, w))

	// deleting again is a miss
	w = do(t, h, http.MethodDelete, "/question", `{"question_uuid":"`+detail.QuestionUUID+`"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Question not found", decode[shared.ErrorResponse](t, w).Error)
}

func TestAnswerLifecycle(t *testing.T) {
	t.Parallel()

	h := newRouter(memory.NewStores())
	questionUUID := uuid.NewString()

	// empty answers
	w := do(t, h, http.MethodGet, "/answers?question_uuid="+questionUUID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]api.AnswerResponse](t, w))

	// post answer
	w = do(t, h, http.MethodPost, "/answer", `{"question_uuid":"`+questionUUID+`","content":"some answer"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	detail := decode[api.AnswerResponse](t, w)
	assert.Equal(t, questionUUID, detail.QuestionUUID)
	assert.Equal(t, "some answer", detail.Content)

	// list by query parameter and by body
	w = do(t, h, http.MethodGet, "/answers?question_uuid="+questionUUID, "")
	assert.Equal(t, []api.AnswerResponse{detail}, decode[[]api.AnswerResponse](t, w))

	w = do(t, h, http.MethodGet, "/answers", `{"question_uuid":"`+questionUUID+`"}`)
	assert.Equal(t, []api.AnswerResponse{detail}, decode[[]api.AnswerResponse](t, w))

	// delete answer
	w = do(t, h, http.MethodDelete, "/answer", `{"answer_uuid":"`+detail.AnswerUUID+`"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/answers?question_uuid="+questionUUID, "")
	assert.Empty(t, decode[[]api.AnswerResponse](t, w))
}

func TestRequestErrors(t *testing.T) {
	t.Parallel()

	h := newRouter(memory.NewStores())
	unknown := uuid.NewString()

	tests := []struct {
		name    string
		method  string
		target  string
		body    string
		status  int
		message string
	}{
		{"create question malformed json", http.MethodPost, "/question", `{"title":`, http.StatusBadRequest, "Invalid request format"},
		{"create question empty body", http.MethodPost, "/question", "", http.StatusBadRequest, "Invalid request format"},
		{"create question missing title", http.MethodPost, "/question", `{"description":"d"}`, http.StatusBadRequest, "Invalid Title: required field"},
		{"create question blank title", http.MethodPost, "/question", `{"title":"   "}`, http.StatusBadRequest, "Question title cannot be empty"},
		{"delete question malformed id", http.MethodDelete, "/question", `{"question_uuid":"not-a-uuid"}`, http.StatusBadRequest, "Invalid identifier"},
		{"delete question missing id", http.MethodDelete, "/question", `{}`, http.StatusBadRequest, "Invalid QuestionUUID: required field"},
		{"delete question unknown id", http.MethodDelete, "/question", `{"question_uuid":"` + unknown + `"}`, http.StatusNotFound, "Question not found"},
		{"create answer malformed question id", http.MethodPost, "/answer", `{"question_uuid":"some_uuid","content":"c"}`, http.StatusBadRequest, "Invalid identifier"},
		{"create answer blank question id", http.MethodPost, "/answer", `{"question_uuid":"  ","content":"c"}`, http.StatusBadRequest, "Answer must name a question"},
		{"list answers without question", http.MethodGet, "/answers", "", http.StatusBadRequest, "Invalid question_uuid: required field"},
		{"list answers malformed question", http.MethodGet, "/answers?question_uuid=xyz", "", http.StatusBadRequest, "Invalid identifier"},
		{"list answers malformed body", http.MethodGet, "/answers", `[`, http.StatusBadRequest, "Invalid request format"},
		{"delete answer malformed id", http.MethodDelete, "/answer", `{"answer_uuid":"1234"}`, http.StatusBadRequest, "Invalid identifier"},
		{"delete answer unknown id", http.MethodDelete, "/answer", `{"answer_uuid":"` + unknown + `"}`, http.StatusNotFound, "Answer not found"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := do(t, h, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.message, decode[shared.ErrorResponse](t, w).Error)
		})
	}
}

// failingStore reports an engine failure from every operation.
type failingStore struct{}

var errEngine = store.NewStoreError("question", "test", "database error",
	errors.New("pq: relation \"questions\" does not exist"))

func (failingStore) Create(context.Context, domain.Question) (domain.QuestionDetail, error) {
	return domain.QuestionDetail{}, errEngine
}

func (failingStore) List(context.Context) ([]domain.QuestionDetail, error) {
	return nil, errEngine
}

func (failingStore) Delete(context.Context, string) error {
	return errEngine
}

func TestEngineFailuresAreOpaque(t *testing.T) {
	t.Parallel()

	h := newRouter(store.Stores{Questions: failingStore{}, Answers: memory.NewAnswerStore()})

	requests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/question", `{"title":"t","description":"d"}`},
		{http.MethodGet, "/questions", ""},
		{http.MethodDelete, "/question", `{"question_uuid":"` + uuid.NewString() + `"}`},
	}

	for _, req := range requests {
		w := do(t, h, req.method, req.target, req.body)

		assert.Equal(t, http.StatusInternalServerError, w.Code, "%s %s", req.method, req.target)
		assert.Equal(t, "An unexpected error occurred", decode[shared.ErrorResponse](t, w).Error)
		assert.NotContains(t, w.Body.String(), "relation")
	}
}

func TestHandlerConstructorsRejectNilStores(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { api.NewQuestionHandler(nil, nil) })
	assert.Panics(t, func() { api.NewAnswerHandler(nil, nil) })
}
