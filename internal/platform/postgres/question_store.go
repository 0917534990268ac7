package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/phrazzld/qa-api/internal/domain"
	"github.com/phrazzld/qa-api/internal/platform/logger"
	"github.com/phrazzld/qa-api/internal/store"
)

const (
	createQuestionQuery = `
		INSERT INTO questions (title, description)
		VALUES ($1, $2)
		RETURNING question_uuid::text, title, description, created_at`

	listQuestionsQuery = `
		SELECT question_uuid::text, title, description, created_at
		FROM questions
		ORDER BY created_at, question_uuid`

	deleteQuestionQuery = `DELETE FROM questions WHERE question_uuid = $1`
)

// PostgresQuestionStore implements the store.QuestionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuestionStore struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	logger         *slog.Logger
}

// Ensure PostgresQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*PostgresQuestionStore)(nil)

// NewPostgresQuestionStore creates a question store backed by pool. Connection
// acquisition waits at most acquireTimeout; zero means no extra bound. If
// logger is nil, a default logger will be used.
func NewPostgresQuestionStore(pool *pgxpool.Pool, acquireTimeout time.Duration, logger *slog.Logger) *PostgresQuestionStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuestionStore{
		pool:           pool,
		acquireTimeout: acquireTimeout,
		logger:         logger,
	}
}

// Create implements store.QuestionStore.Create. The identifier and creation
// time are generated by the database.
func (s *PostgresQuestionStore) Create(ctx context.Context, question domain.Question) (domain.QuestionDetail, error) {
	log := logger.ForComponent(ctx, s.logger, "question_store")

	conn, err := acquire(ctx, s.pool, s.acquireTimeout)
	if err != nil {
		return domain.QuestionDetail{}, s.fail(log, err, "create")
	}
	defer conn.Release()

	var detail domain.QuestionDetail
	err = conn.QueryRow(ctx, createQuestionQuery, question.Title, question.Description).Scan(
		&detail.QuestionUUID,
		&detail.Title,
		&detail.Description,
		&detail.CreatedAt,
	)
	if err != nil {
		return domain.QuestionDetail{}, s.fail(log, err, "create")
	}
	detail.CreatedAt = detail.CreatedAt.UTC()

	log.Debug("question created", slog.String("question_uuid", detail.QuestionUUID))
	return detail, nil
}

// List implements store.QuestionStore.List. Questions are ordered by
// creation time.
func (s *PostgresQuestionStore) List(ctx context.Context) ([]domain.QuestionDetail, error) {
	log := logger.ForComponent(ctx, s.logger, "question_store")

	conn, err := acquire(ctx, s.pool, s.acquireTimeout)
	if err != nil {
		return nil, s.fail(log, err, "list")
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, listQuestionsQuery)
	if err != nil {
		return nil, s.fail(log, err, "list")
	}

	questions, err := pgx.CollectRows(rows, scanQuestion)
	if err != nil {
		return nil, s.fail(log, err, "list")
	}
	if questions == nil {
		questions = []domain.QuestionDetail{}
	}

	return questions, nil
}

// Delete implements store.QuestionStore.Delete.
func (s *PostgresQuestionStore) Delete(ctx context.Context, questionUUID string) error {
	log := logger.ForComponent(ctx, s.logger, "question_store")

	id, err := store.ParseIdentifier(questionUUID)
	if err != nil {
		log.Debug("rejected malformed question identifier", slog.String("question_uuid", questionUUID))
		return err
	}

	conn, err := acquire(ctx, s.pool, s.acquireTimeout)
	if err != nil {
		return s.fail(log, err, "delete")
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, deleteQuestionQuery, id.String())
	if err != nil {
		return s.fail(log, err, "delete")
	}
	if err := CheckRowsAffected(tag, store.EntityQuestion); err != nil {
		log.Debug("question not found for deletion", slog.String("question_uuid", id.String()))
		return err
	}

	log.Debug("question deleted", slog.String("question_uuid", id.String()))
	return nil
}

// fail maps err and logs engine failures with their cause.
func (s *PostgresQuestionStore) fail(log *slog.Logger, err error, operation string) error {
	mapped := MapError(err, store.EntityQuestion, operation)
	if store.KindOf(mapped) == store.KindOther {
		log.Error("question store operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
	}
	return mapped
}

func scanQuestion(row pgx.CollectableRow) (domain.QuestionDetail, error) {
	var q domain.QuestionDetail
	if err := row.Scan(&q.QuestionUUID, &q.Title, &q.Description, &q.CreatedAt); err != nil {
		return domain.QuestionDetail{}, err
	}
	q.CreatedAt = q.CreatedAt.UTC()
	return q, nil
}
