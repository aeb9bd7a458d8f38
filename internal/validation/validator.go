package validation

import (
	"regexp"
	"strings"

	"dish-quiz/internal/domain"
)

// MaxOptionIndex bounds option_index; no question carries more options.
const MaxOptionIndex = 31

var validULID = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID validates a session identifier taken from the path
func (v *Validator) ValidateSessionID(sessionID string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(sessionID) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !isValidULID(sessionID) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", sessionID))
	}
	return errors
}

// ValidateAnswerRequest validates the option selection body
func (v *Validator) ValidateAnswerRequest(optionIndex *int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if optionIndex == nil {
		errors = append(errors, domain.NewMissingFieldError("option_index"))
	} else if *optionIndex < 0 || *optionIndex > MaxOptionIndex {
		errors = append(errors, domain.NewOutOfRangeError("option_index", *optionIndex, 0, MaxOptionIndex))
	}
	return errors
}

// isValidULID checks for the 26-character Crockford base32 form
func isValidULID(s string) bool {
	return validULID.MatchString(strings.ToUpper(s))
}
