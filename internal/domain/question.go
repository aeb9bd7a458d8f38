package domain

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Question is one multiple-choice entry of the question bank.
type Question struct {
	ID            string   `json:"id,omitempty"`
	Position      int      `json:"position"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Validate validates the question
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewInvalidQuestionError("question text is required")
	}
	if len(q.Options) < 2 {
		return NewInvalidQuestionError(fmt.Sprintf("question %q needs at least two options", q.Text))
	}
	if len(lo.Uniq(q.Options)) != len(q.Options) {
		return NewInvalidQuestionError(fmt.Sprintf("question %q has duplicate options", q.Text))
	}
	if !lo.Contains(q.Options, q.CorrectOption) {
		return NewInvalidQuestionError(fmt.Sprintf("correct answer of %q is not one of its options", q.Text))
	}
	return nil
}

// CorrectIndex returns the position of the correct option, or -1.
func (q *Question) CorrectIndex() int {
	return lo.IndexOf(q.Options, q.CorrectOption)
}

// ValidateBank checks a full question sequence before a quiz can run on it.
func ValidateBank(questions []Question) error {
	if len(questions) == 0 {
		return NewEmptyQuestionBankError()
	}
	for i := range questions {
		if err := questions[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
