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
	createAnswerQuery = `
		INSERT INTO answers (question_uuid, content)
		VALUES ($1, $2)
		RETURNING answer_uuid::text, question_uuid::text, content, created_at`

	listAnswersQuery = `
		SELECT answer_uuid::text, question_uuid::text, content, created_at
		FROM answers
		WHERE question_uuid = $1
		ORDER BY created_at, answer_uuid`

	deleteAnswerQuery = `DELETE FROM answers WHERE answer_uuid = $1`
)

// PostgresAnswerStore implements the store.AnswerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresAnswerStore struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
	logger         *slog.Logger
}

// Ensure PostgresAnswerStore implements store.AnswerStore interface
var _ store.AnswerStore = (*PostgresAnswerStore)(nil)

// NewPostgresAnswerStore creates an answer store backed by pool.
func NewPostgresAnswerStore(pool *pgxpool.Pool, acquireTimeout time.Duration, logger *slog.Logger) *PostgresAnswerStore {
	if pool == nil {
		panic("pool cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAnswerStore{
		pool:           pool,
		acquireTimeout: acquireTimeout,
		logger:         logger,
	}
}

// Create implements store.AnswerStore.Create.
func (s *PostgresAnswerStore) Create(ctx context.Context, answer domain.Answer) (domain.AnswerDetail, error) {
	log := logger.ForComponent(ctx, s.logger, "answer_store")

	questionID, err := store.ParseIdentifier(answer.QuestionUUID)
	if err != nil {
		return domain.AnswerDetail{}, err
	}

	conn, err := acquire(ctx, s.pool, s.acquireTimeout)
	if err != nil {
		return domain.AnswerDetail{}, s.fail(log, err, "create")
	}
	defer conn.Release()

	var detail domain.AnswerDetail
	err = conn.QueryRow(ctx, createAnswerQuery, questionID.String(), answer.Content).Scan(
		&detail.AnswerUUID,
		&detail.QuestionUUID,
		&detail.Content,
		&detail.CreatedAt,
	)
	if err != nil {
		return domain.AnswerDetail{}, s.fail(log, err, "create")
	}
	detail.CreatedAt = detail.CreatedAt.UTC()

	log.Debug("answer created",
		slog.String("answer_uuid", detail.AnswerUUID),
		slog.String("question_uuid", detail.QuestionUUID))
	return detail, nil
}

// ListByQuestion implements store.AnswerStore.ListByQuestion.
func (s *PostgresAnswerStore) ListByQuestion(ctx context.Context, questionUUID string) ([]domain.AnswerDetail, error) {
	log := logger.ForComponent(ctx, s.logger, "answer_store")

	questionID, err := store.ParseIdentifier(questionUUID)
	if err != nil {
		return nil, err
	}

	conn, err := acquire(ctx, s.pool, s.acquireTimeout)
	if err != nil {
		return nil, s.fail(log, err, "list")
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, listAnswersQuery, questionID.String())
	if err != nil {
		return nil, s.fail(log, err, "list")
	}

	answers, err := pgx.CollectRows(rows, scanAnswer)
	if err != nil {
		return nil, s.fail(log, err, "list")
	}
	if answers == nil {
		answers = []domain.AnswerDetail{}
	}

	return answers, nil
}

// Delete implements store.AnswerStore.Delete.
func (s *PostgresAnswerStore) Delete(ctx context.Context, answerUUID string) error {
	log := logger.ForComponent(ctx, s.logger, "answer_store")

	id, err := store.ParseIdentifier(answerUUID)
	if err != nil {
		return err
	}

	conn, err := acquire(ctx, s.pool, s.acquireTimeout)
	if err != nil {
		return s.fail(log, err, "delete")
	}
	defer conn.Release()

	tag, err := conn.Exec(ctx, deleteAnswerQuery, id.String())
	if err != nil {
		return s.fail(log, err, "delete")
	}
	if err := CheckRowsAffected(tag, store.EntityAnswer); err != nil {
		return err
	}

	log.Debug("answer deleted", slog.String("answer_uuid", id.String()))
	return nil
}

func (s *PostgresAnswerStore) fail(log *slog.Logger, err error, operation string) error {
	mapped := MapError(err, store.EntityAnswer, operation)
	if store.KindOf(mapped) == store.KindOther {
		log.Error("answer store operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
	}
	return mapped
}

func scanAnswer(row pgx.CollectableRow) (domain.AnswerDetail, error) {
	var a domain.AnswerDetail
	if err := row.Scan(&a.AnswerUUID, &a.QuestionUUID, &a.Content, &a.CreatedAt); err != nil {
		return domain.AnswerDetail{}, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return a, nil
}

// NewStores creates the question and answer stores for pool.
func NewStores(pool *pgxpool.Pool, acquireTimeout time.Duration, logger *slog.Logger) store.Stores {
	return store.Stores{
		Questions: NewPostgresQuestionStore(pool, acquireTimeout, logger),
		Answers:   NewPostgresAnswerStore(pool, acquireTimeout, logger),
	}
}
