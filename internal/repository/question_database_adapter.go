package repository

import (
	"context"
	"fmt"
	"time"

	"dish-quiz/internal/domain"
	"dish-quiz/internal/repository/models"
	"dish-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const selectQuestions = `SELECT
		id "id",
		position "position",
		question "question",
		options "options",
		correct_option "correct_option",
		explanation "explanation",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"
	FROM quiz_questions
	WHERE deleted_at IS NULL
	ORDER BY position`

// QuestionDatabaseAdapter implements domain.QuestionRepository using sqlx.DB
type QuestionDatabaseAdapter struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) domain.QuestionRepository {
	return &QuestionDatabaseAdapter{db: db, now: time.Now}
}

// ListQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	var rows []models.Question
	exec := executor(ctx, a.db)
	if err := exec.SelectContext(ctx, &rows, selectQuestions); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions := make([]domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}

// CountQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) CountQuestions(ctx context.Context) (int, error) {
	var count int
	exec := executor(ctx, a.db)
	if err := exec.GetContext(ctx, &count, `SELECT COUNT(*) FROM quiz_questions WHERE deleted_at IS NULL`); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// SaveQuestion implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if question == nil {
		return fmt.Errorf("cannot save nil question")
	}
	if err := question.Validate(); err != nil {
		return err
	}

	row := toModelQuestion(question)
	if row.ID == "" {
		row.ID = util.NewULID()
	}
	now := a.now()
	row.CreatedAt = now
	row.UpdatedAt = now

	exec := executor(ctx, a.db)
	query := exec.Rebind(`INSERT INTO quiz_questions (
		id, position, question, options, correct_option, explanation, created_at, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := exec.ExecContext(ctx, query,
		row.ID,
		row.Position,
		row.Question,
		row.Options,
		row.CorrectOption,
		row.Explanation,
		row.CreatedAt,
		row.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question: %w", err)
	}

	question.ID = row.ID
	return nil
}

// DeleteAllQuestions implements domain.QuestionRepository
func (a *QuestionDatabaseAdapter) DeleteAllQuestions(ctx context.Context) error {
	exec := executor(ctx, a.db)
	query := exec.Rebind(`UPDATE quiz_questions SET deleted_at = ? WHERE deleted_at IS NULL`)
	if _, err := exec.ExecContext(ctx, query, util.NullTime(a.now())); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	return nil
}

func toDomainQuestion(m *models.Question) domain.Question {
	options := make([]string, len(m.Options))
	copy(options, m.Options)
	return domain.Question{
		ID:            m.ID,
		Position:      m.Position,
		Text:          m.Question,
		Options:       options,
		CorrectOption: m.CorrectOption,
		Explanation:   m.Explanation.String,
	}
}

func toModelQuestion(q *domain.Question) *models.Question {
	return &models.Question{
		ID:            q.ID,
		Position:      q.Position,
		Question:      q.Text,
		Options:       models.StringSlice(q.Options),
		CorrectOption: q.CorrectOption,
		Explanation:   util.NullString(q.Explanation),
	}
}
