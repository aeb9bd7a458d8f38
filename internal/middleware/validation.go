package middleware

import (
	"strings"

	"dish-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// LocalSessionID is the fiber.Ctx locals key holding the validated session ID
const LocalSessionID = "validated_session_id"

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateSessionID(id); len(errors) > 0 {
			return errors
		}

		// Params are backed by the request buffer; copy before storing.
		c.Locals(LocalSessionID, strings.ToUpper(strings.Clone(id)))
		return c.Next()
	}
}

// SessionID returns the ID stored by ValidateSessionID
func SessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalSessionID).(string)
	return id
}
