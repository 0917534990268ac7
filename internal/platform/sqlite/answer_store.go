package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/qa-api/internal/domain"
	"github.com/phrazzld/qa-api/internal/platform/logger"
	"github.com/phrazzld/qa-api/internal/store"
)

const (
	createAnswerQuery = `
		INSERT INTO answers (answer_uuid, question_uuid, content)
		VALUES (?, ?, ?)
		RETURNING answer_uuid, question_uuid, content, created_at`

	listAnswersQuery = `
		SELECT answer_uuid, question_uuid, content, created_at
		FROM answers
		WHERE question_uuid = ?
		ORDER BY created_at, rowid`

	deleteAnswerQuery = `DELETE FROM answers WHERE answer_uuid = ?`
)

// SQLiteAnswerStore implements store.AnswerStore on SQLite.
type SQLiteAnswerStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure SQLiteAnswerStore implements store.AnswerStore interface
var _ store.AnswerStore = (*SQLiteAnswerStore)(nil)

// NewSQLiteAnswerStore creates an answer store backed by db.
func NewSQLiteAnswerStore(db *sql.DB, logger *slog.Logger) *SQLiteAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteAnswerStore{
		db:     db,
		logger: logger,
	}
}

// Create implements store.AnswerStore.Create.
func (s *SQLiteAnswerStore) Create(ctx context.Context, answer domain.Answer) (domain.AnswerDetail, error) {
	log := logger.ForComponent(ctx, s.logger, "answer_store")

	questionID, err := store.ParseIdentifier(answer.QuestionUUID)
	if err != nil {
		return domain.AnswerDetail{}, err
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return domain.AnswerDetail{}, s.fail(log, err, "create")
	}
	defer conn.Close()

	var (
		detail    domain.AnswerDetail
		createdAt string
	)
	err = conn.QueryRowContext(ctx, createAnswerQuery,
		uuid.NewString(), questionID.String(), answer.Content,
	).Scan(&detail.AnswerUUID, &detail.QuestionUUID, &detail.Content, &createdAt)
	if err != nil {
		return domain.AnswerDetail{}, s.fail(log, err, "create")
	}

	if detail.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.AnswerDetail{}, s.fail(log, err, "create")
	}

	log.Debug("answer created",
		slog.String("answer_uuid", detail.AnswerUUID),
		slog.String("question_uuid", detail.QuestionUUID))
	return detail, nil
}

// ListByQuestion implements store.AnswerStore.ListByQuestion.
func (s *SQLiteAnswerStore) ListByQuestion(ctx context.Context, questionUUID string) ([]domain.AnswerDetail, error) {
	log := logger.ForComponent(ctx, s.logger, "answer_store")

	questionID, err := store.ParseIdentifier(questionUUID)
	if err != nil {
		return nil, err
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, s.fail(log, err, "list")
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, listAnswersQuery, questionID.String())
	if err != nil {
		return nil, s.fail(log, err, "list")
	}
	defer rows.Close()

	answers := []domain.AnswerDetail{}
	for rows.Next() {
		var (
			a         domain.AnswerDetail
			createdAt string
		)
		if err := rows.Scan(&a.AnswerUUID, &a.QuestionUUID, &a.Content, &createdAt); err != nil {
			return nil, s.fail(log, err, "list")
		}
		if a.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, s.fail(log, err, "list")
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(log, err, "list")
	}

	return answers, nil
}

// Delete implements store.AnswerStore.Delete.
func (s *SQLiteAnswerStore) Delete(ctx context.Context, answerUUID string) error {
	log := logger.ForComponent(ctx, s.logger, "answer_store")

	id, err := store.ParseIdentifier(answerUUID)
	if err != nil {
		return err
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return s.fail(log, err, "delete")
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, deleteAnswerQuery, id.String())
	if err != nil {
		return s.fail(log, err, "delete")
	}
	if err := CheckRowsAffected(result, store.EntityAnswer); err != nil {
		return s.fail(log, err, "delete")
	}

	log.Debug("answer deleted", slog.String("answer_uuid", id.String()))
	return nil
}

func (s *SQLiteAnswerStore) fail(log *slog.Logger, err error, operation string) error {
	mapped := MapError(err, store.EntityAnswer, operation)
	if store.KindOf(mapped) == store.KindOther {
		log.Error("answer store operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
	}
	return mapped
}

// NewStores creates the question and answer stores for db.
func NewStores(db *sql.DB, logger *slog.Logger) store.Stores {
	return store.Stores{
		Questions: NewSQLiteQuestionStore(db, logger),
		Answers:   NewSQLiteAnswerStore(db, logger),
	}
}
