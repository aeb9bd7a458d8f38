package validation

import (
	"testing"

	"dish-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSessionID(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name     string
		id       string
		wantCode domain.ErrorCode
	}{
		{"valid", "01ARZ3NDEKTSV4RRFFQ69G5FAV", ""},
		{"lowercase valid", "01arz3ndektsv4rrffq69g5fav", ""},
		{"empty", "  ", domain.CodeMissingField},
		{"too short", "01ARZ3", domain.CodeInvalidFormat},
		{"invalid letter", "01ARZ3NDEKTSV4RRFFQ69G5FAU", domain.CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateSessionID(tt.id)
			if tt.wantCode == "" {
				assert.Empty(t, errs)
				return
			}
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantCode, errs[0].Code)
			assert.Equal(t, "session_id", errs[0].Field)
		})
	}
}

func TestValidateAnswerRequest(t *testing.T) {
	v := NewValidator()
	idx := func(i int) *int { return &i }

	assert.Empty(t, v.ValidateAnswerRequest(idx(0)))
	assert.Empty(t, v.ValidateAnswerRequest(idx(MaxOptionIndex)))

	errs := v.ValidateAnswerRequest(nil)
	require.Len(t, errs, 1)
	assert.Equal(t, domain.CodeMissingField, errs[0].Code)

	errs = v.ValidateAnswerRequest(idx(-1))
	require.Len(t, errs, 1)
	assert.Equal(t, domain.CodeOutOfRange, errs[0].Code)

	errs = v.ValidateAnswerRequest(idx(32))
	require.Len(t, errs, 1)
	assert.Equal(t, "option_index: must be between 0 and 31", errs[0].Error())
}
