package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_Validate(t *testing.T) {
	valid := func() Question {
		return Question{
			Text:          "When was Pizza Margherita created?",
			Options:       []string{"1869", "1879", "1889", "1899"},
			CorrectOption: "1889",
		}
	}

	tests := []struct {
		name    string
		mutate  func(q *Question)
		wantErr bool
		errText string
	}{
		{"valid question", func(q *Question) {}, false, ""},
		{"blank text", func(q *Question) { q.Text = "  " }, true, "question text is required"},
		{"single option", func(q *Question) { q.Options = []string{"1889"} }, true, "at least two options"},
		{"duplicate options", func(q *Question) { q.Options = []string{"1889", "1889"} }, true, "duplicate options"},
		{"correct answer missing", func(q *Question) { q.CorrectOption = "1900" }, true, "not one of its options"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := valid()
			tt.mutate(&q)
			err := q.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errText)
			assert.True(t, HasCode(err, CodeInvalidQuestion))
		})
	}
}

func TestQuestion_CorrectIndex(t *testing.T) {
	q := Question{Options: []string{"a", "b", "c"}, CorrectOption: "c"}
	assert.Equal(t, 2, q.CorrectIndex())

	q.CorrectOption = "z"
	assert.Equal(t, -1, q.CorrectIndex())
}

func TestValidateBank(t *testing.T) {
	err := ValidateBank(nil)
	assert.True(t, HasCode(err, CodeEmptyQuestionBank))

	bank := []Question{
		{Text: "ok", Options: []string{"a", "b"}, CorrectOption: "a"},
		{Text: "broken", Options: []string{"a", "b"}, CorrectOption: "c"},
	}
	assert.True(t, HasCode(ValidateBank(bank), CodeInvalidQuestion))
	assert.NoError(t, ValidateBank(bank[:1]))
}

func TestDomainError(t *testing.T) {
	cause := errors.New("boom")
	err := NewInternalError("failed to load", cause)

	assert.Equal(t, "failed to load: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	idx := NewInvalidIndexError(4, 2)
	assert.Equal(t, CodeInvalidIndex, idx.Code)
	assert.Equal(t, 4, idx.Context["index"])
	assert.Equal(t, 2, idx.Context["size"])

	b, jsonErr := idx.MarshalJSON()
	assert.NoError(t, jsonErr)
	assert.JSONEq(t, `{"code":"INVALID_INDEX","message":"index 4 out of range [0, 2)"}`, string(b))
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		NewMissingFieldError("option_index"),
		NewOutOfRangeError("option_index", 99, 0, 31),
	}
	assert.Equal(t, "validation failed: option_index: field is required; option_index: must be between 0 and 31", errs.Error())
}

func TestResultMessage(t *testing.T) {
	perfect, msg := ResultMessage(10, 10)
	assert.True(t, perfect)
	assert.Equal(t, MessagePerfect, msg)

	perfect, msg = ResultMessage(9, 10)
	assert.False(t, perfect)
	assert.Equal(t, MessageRetry, msg)
}
