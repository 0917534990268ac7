package main

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/qa-api/internal/api"
	apiMiddleware "github.com/phrazzld/qa-api/internal/api/middleware"
)

// healthTimeout bounds the backend ping behind /health.
const healthTimeout = 2 * time.Second

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(corsOptions(app.config.Server.AllowedOrigins)))

	r.Use(middleware.Timeout(app.config.Server.RequestTimeout))
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	questionHandler := api.NewQuestionHandler(app.backend.stores.Questions, app.logger)
	answerHandler := api.NewAnswerHandler(app.backend.stores.Answers, app.logger)

	r.Post("/question", questionHandler.CreateQuestion)
	r.Get("/questions", questionHandler.ListQuestions)
	r.Delete("/question", questionHandler.DeleteQuestion)

	r.Post("/answer", answerHandler.CreateAnswer)
	r.Get("/answers", answerHandler.ListAnswers)
	r.Delete("/answer", answerHandler.DeleteAnswer)

	r.Get("/health", app.healthHandler)

	return r
}

// corsOptions allows credentialed requests from origins. A "*" entry admits
// every origin by echoing the request's Origin back, since browsers reject a
// literal "*" together with credentials.
func corsOptions(origins []string) cors.Options {
	opts := cors.Options{
		AllowedMethods:   []string{"POST", "GET", "PATCH", "OPTIONS", "DELETE"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}

	if slices.Contains(origins, "*") {
		opts.AllowOriginFunc = func(*http.Request, string) bool { return true }
	} else {
		opts.AllowedOrigins = origins
	}
	return opts
}

// healthHandler answers 200 OK when the backend responds to a ping.
func (app *application) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := app.backend.ping(ctx); err != nil {
		app.logger.Error("health check failed", "error", err, "backend", app.backend.name)
		http.Error(w, "backend unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		app.logger.Error("Failed to write health check response", "error", err)
	}
}
