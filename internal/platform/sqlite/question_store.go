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
	createQuestionQuery = `
		INSERT INTO questions (question_uuid, title, description)
		VALUES (?, ?, ?)
		RETURNING question_uuid, title, description, created_at`

	listQuestionsQuery = `
		SELECT question_uuid, title, description, created_at
		FROM questions
		ORDER BY created_at, rowid`

	deleteQuestionQuery = `DELETE FROM questions WHERE question_uuid = ?`
)

// SQLiteQuestionStore implements store.QuestionStore on SQLite.
type SQLiteQuestionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure SQLiteQuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*SQLiteQuestionStore)(nil)

// NewSQLiteQuestionStore creates a question store backed by db.
func NewSQLiteQuestionStore(db *sql.DB, logger *slog.Logger) *SQLiteQuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteQuestionStore{
		db:     db,
		logger: logger,
	}
}

// Create implements store.QuestionStore.Create. SQLite has no uuid
// generator, so the identifier is minted here; created_at comes from the
// column default.
func (s *SQLiteQuestionStore) Create(ctx context.Context, question domain.Question) (domain.QuestionDetail, error) {
	log := logger.ForComponent(ctx, s.logger, "question_store")

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return domain.QuestionDetail{}, s.fail(log, err, "create")
	}
	defer conn.Close()

	var (
		detail    domain.QuestionDetail
		createdAt string
	)
	err = conn.QueryRowContext(ctx, createQuestionQuery,
		uuid.NewString(), question.Title, question.Description,
	).Scan(&detail.QuestionUUID, &detail.Title, &detail.Description, &createdAt)
	if err != nil {
		return domain.QuestionDetail{}, s.fail(log, err, "create")
	}

	if detail.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return domain.QuestionDetail{}, s.fail(log, err, "create")
	}

	log.Debug("question created", slog.String("question_uuid", detail.QuestionUUID))
	return detail, nil
}

// List implements store.QuestionStore.List.
func (s *SQLiteQuestionStore) List(ctx context.Context) ([]domain.QuestionDetail, error) {
	log := logger.ForComponent(ctx, s.logger, "question_store")

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, s.fail(log, err, "list")
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, listQuestionsQuery)
	if err != nil {
		return nil, s.fail(log, err, "list")
	}
	defer rows.Close()

	questions := []domain.QuestionDetail{}
	for rows.Next() {
		var (
			q         domain.QuestionDetail
			createdAt string
		)
		if err := rows.Scan(&q.QuestionUUID, &q.Title, &q.Description, &createdAt); err != nil {
			return nil, s.fail(log, err, "list")
		}
		if q.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, s.fail(log, err, "list")
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fail(log, err, "list")
	}

	return questions, nil
}

// Delete implements store.QuestionStore.Delete.
func (s *SQLiteQuestionStore) Delete(ctx context.Context, questionUUID string) error {
	log := logger.ForComponent(ctx, s.logger, "question_store")

	id, err := store.ParseIdentifier(questionUUID)
	if err != nil {
		return err
	}

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return s.fail(log, err, "delete")
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, deleteQuestionQuery, id.String())
	if err != nil {
		return s.fail(log, err, "delete")
	}
	if err := CheckRowsAffected(result, store.EntityQuestion); err != nil {
		return s.fail(log, err, "delete")
	}

	log.Debug("question deleted", slog.String("question_uuid", id.String()))
	return nil
}

func (s *SQLiteQuestionStore) fail(log *slog.Logger, err error, operation string) error {
	mapped := MapError(err, store.EntityQuestion, operation)
	if store.KindOf(mapped) == store.KindOther {
		log.Error("question store operation failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
	}
	return mapped
}
