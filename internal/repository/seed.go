package repository

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"dish-quiz/internal/domain"
)

//go:embed seed/dishes.json
var dishesJSON []byte

// DefaultQuestions returns the built-in dish question bank.
func DefaultQuestions() ([]domain.Question, error) {
	var questions []domain.Question
	if err := json.Unmarshal(dishesJSON, &questions); err != nil {
		return nil, fmt.Errorf("failed to decode built-in question bank: %w", err)
	}
	if err := domain.ValidateBank(questions); err != nil {
		return nil, err
	}
	return questions, nil
}
