package domain

import "context"

// QuestionRepository defines the interface for question bank persistence
type QuestionRepository interface {
	// ListQuestions returns the live question bank ordered by position
	ListQuestions(ctx context.Context) ([]Question, error)

	// CountQuestions returns the number of live questions
	CountQuestions(ctx context.Context) (int, error)

	// SaveQuestion persists a new question, assigning an ID when missing
	SaveQuestion(ctx context.Context, question *Question) error

	// DeleteAllQuestions soft-deletes the whole bank
	DeleteAllQuestions(ctx context.Context) error
}

// TransactionManager runs a unit of work atomically
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
