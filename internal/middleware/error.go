package middleware

import (
	"errors"
	"net/http"

	"dish-quiz/internal/domain"
	"dish-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every failed request
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists each rejected request field
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

var statusByCode = map[domain.ErrorCode]int{
	domain.CodeNotFound:          http.StatusNotFound,
	domain.CodeSessionNotFound:   http.StatusNotFound,
	domain.CodeInvalidInput:      http.StatusBadRequest,
	domain.CodeInvalidIndex:      http.StatusBadRequest,
	domain.CodeValidation:        http.StatusBadRequest,
	domain.CodeMissingField:      http.StatusBadRequest,
	domain.CodeInvalidFormat:     http.StatusBadRequest,
	domain.CodeOutOfRange:        http.StatusBadRequest,
	domain.CodeQuizFinished:      http.StatusConflict,
	domain.CodeTooManySessions:   http.StatusServiceUnavailable,
	domain.CodeInvalidQuestion:   http.StatusUnprocessableEntity,
	domain.CodeEmptyQuestionBank: http.StatusUnprocessableEntity,
}

// StatusFor returns the HTTP status a domain error code is reported with
func StatusFor(code domain.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorHandler is installed as fiber.Config.ErrorHandler. Handlers return
// domain errors and this turns them into JSON responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get().With(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		if id := SessionID(c); id != "" {
			log = log.With(zap.String("session_id", id))
		}

		var verrs domain.ValidationErrors
		var derr *domain.DomainError
		var ferr *fiber.Error

		switch {
		case errors.As(err, &verrs):
			log.Warn("Request validation failed", zap.Int("error_count", len(verrs)))
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.CodeValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  verrs,
			})

		case errors.As(err, &derr):
			status := StatusFor(derr.Code)
			if status >= http.StatusInternalServerError {
				log.Error("Request failed", zap.String("code", string(derr.Code)), zap.Error(err))
			} else {
				log.Info("Request rejected", zap.String("code", string(derr.Code)), zap.String("message", derr.Message))
			}
			resp := ErrorResponse{Code: string(derr.Code), Message: derr.Message, Status: status}
			if len(derr.Context) > 0 {
				resp.Details = derr.Context
			}
			return c.Status(status).JSON(resp)

		case errors.As(err, &ferr):
			log.Warn("HTTP error", zap.Int("status", ferr.Code), zap.String("message", ferr.Message))
			return c.Status(ferr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: ferr.Message,
				Status:  ferr.Code,
			})
		}

		log.Error("Unhandled error", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}
