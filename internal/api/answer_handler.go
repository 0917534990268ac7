package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/qa-api/internal/api/shared"
	"github.com/phrazzld/qa-api/internal/platform/logger"
	"github.com/phrazzld/qa-api/internal/store"
)

// AnswerHandler handles answer-related HTTP requests
type AnswerHandler struct {
	answers   store.AnswerStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewAnswerHandler creates a new AnswerHandler
func NewAnswerHandler(answers store.AnswerStore, logger *slog.Logger) *AnswerHandler {
	if answers == nil {
		panic("answers cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AnswerHandler{
		answers:   answers,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "answer_handler")),
	}
}

// CreateAnswer handles POST /answer requests
func (h *AnswerHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateAnswerRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	answer := req.toDomain()
	if err := answer.Validate(); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	detail, err := h.answers.Create(r.Context(), answer)
	if err != nil {
		respondWithStoreError(w, r, err)
		return
	}

	log.Info("answer created",
		slog.String("answer_uuid", detail.AnswerUUID),
		slog.String("question_uuid", detail.QuestionUUID))
	shared.RespondWithJSON(w, r, http.StatusCreated, answerToResponse(detail))
}

// ListAnswers handles GET /answers requests. The question is taken from the
// question_uuid query parameter, or from a JSON body when the parameter is
// absent.
func (h *AnswerHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	questionUUID := r.URL.Query().Get("question_uuid")

	if questionUUID == "" {
		var req QuestionIDRequest
		err := shared.DecodeJSON(w, r, &req)
		switch {
		case errors.Is(err, shared.ErrEmptyBody):
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid question_uuid: required field")
			return
		case err != nil:
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}

		if err := h.validator.Struct(req); err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
			return
		}
		questionUUID = req.QuestionUUID
	}

	answers, err := h.answers.ListByQuestion(r.Context(), questionUUID)
	if err != nil {
		respondWithStoreError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, answersToResponse(answers))
}

// DeleteAnswer handles DELETE /answer requests
func (h *AnswerHandler) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req AnswerIDRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.answers.Delete(r.Context(), req.AnswerUUID); err != nil {
		respondWithStoreError(w, r, err)
		return
	}

	log.Info("answer deleted", slog.String("answer_uuid", req.AnswerUUID))
	shared.RespondNoContent(w)
}
