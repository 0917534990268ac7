package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/qa-api/internal/api/shared"
	"github.com/phrazzld/qa-api/internal/platform/logger"
	"github.com/phrazzld/qa-api/internal/store"
)

// QuestionHandler handles question-related HTTP requests
type QuestionHandler struct {
	questions store.QuestionStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewQuestionHandler creates a new QuestionHandler
func NewQuestionHandler(questions store.QuestionStore, logger *slog.Logger) *QuestionHandler {
	if questions == nil {
		panic("questions cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &QuestionHandler{
		questions: questions,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "question_handler")),
	}
}

// CreateQuestion handles POST /question requests
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateQuestionRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	question := req.toDomain()
	if err := question.Validate(); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	detail, err := h.questions.Create(r.Context(), question)
	if err != nil {
		respondWithStoreError(w, r, err)
		return
	}

	log.Info("question created", slog.String("question_uuid", detail.QuestionUUID))
	shared.RespondWithJSON(w, r, http.StatusCreated, questionToResponse(detail))
}

// ListQuestions handles GET /questions requests
func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.List(r.Context())
	if err != nil {
		respondWithStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, questionsToResponse(questions))
}

// DeleteQuestion handles DELETE /question requests. The question is named in
// the JSON body. Its answers are not deleted.
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req QuestionIDRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.questions.Delete(r.Context(), req.QuestionUUID); err != nil {
		respondWithStoreError(w, r, err)
		return
	}

	log.Info("question deleted", slog.String("question_uuid", req.QuestionUUID))
	shared.RespondNoContent(w)
}

// respondWithStoreError writes the response for a failed store call.
func respondWithStoreError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
