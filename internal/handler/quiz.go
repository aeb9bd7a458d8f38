package handler

import (
	"dish-quiz/internal/domain"
	"dish-quiz/internal/dto"
	"dish-quiz/internal/logger"
	"dish-quiz/internal/middleware"
	"dish-quiz/internal/service"
	"dish-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz session HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// StartSession handles POST /api/sessions
func (h *QuizHandler) StartSession(c *fiber.Ctx) error {
	resp, err := h.service.StartSession(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to start quiz session", zap.Error(err))
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetSession handles GET /api/sessions/:id
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	resp, err := h.service.GetSession(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAnswer handles POST /api/sessions/:id/answer
func (h *QuizHandler) SubmitAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}
	if errs := h.validator.ValidateAnswerRequest(req.OptionIndex); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SelectOption(c.UserContext(), middleware.SessionID(c), *req.OptionIndex)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Next handles POST /api/sessions/:id/next
func (h *QuizHandler) Next(c *fiber.Ctx) error {
	resp, err := h.service.Next(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Previous handles POST /api/sessions/:id/previous
func (h *QuizHandler) Previous(c *fiber.Ctx) error {
	resp, err := h.service.Previous(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Restart handles POST /api/sessions/:id/restart
func (h *QuizHandler) Restart(c *fiber.Ctx) error {
	resp, err := h.service.Restart(c.UserContext(), middleware.SessionID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// EndSession handles DELETE /api/sessions/:id
func (h *QuizHandler) EndSession(c *fiber.Ctx) error {
	if err := h.service.EndSession(c.UserContext(), middleware.SessionID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetQuestionBank handles GET /api/questions
func (h *QuizHandler) GetQuestionBank(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestionBank(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to load question bank", zap.Error(err))
		return err
	}
	return c.JSON(resp)
}
