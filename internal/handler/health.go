package handler

import (
	"context"
	"time"

	"dish-quiz/internal/domain"
	"dish-quiz/internal/dto"
	"dish-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

const healthTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports liveness and dependency status
type HealthHandler struct {
	quiz    service.QuizService
	db      Pinger
	cache   domain.Cache
	started time.Time
}

// NewHealthHandler creates a HealthHandler; db and cache may be nil
func NewHealthHandler(quiz service.QuizService, db Pinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{quiz: quiz, db: db, cache: cache, started: time.Now()}
}

// Health handles GET /healthz
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
	defer cancel()

	resp := dto.HealthResponse{
		Status:         "ok",
		Uptime:         time.Since(h.started).Round(time.Second).String(),
		ActiveSessions: h.quiz.ActiveSessions(),
		Checks:         map[string]string{},
	}
	if bank, err := h.quiz.GetQuestionBank(ctx); err != nil {
		resp.Checks["questions"] = err.Error()
	} else {
		resp.Questions = bank.Total
	}
	if h.db != nil {
		resp.Checks["database"] = check(h.db.PingContext(ctx))
	}
	if h.cache != nil {
		resp.Checks["cache"] = check(h.cache.Ping(ctx))
	}
	for _, v := range resp.Checks {
		if v != "ok" {
			resp.Status = "degraded"
		}
	}
	return c.JSON(resp)
}

func check(err error) string {
	if err != nil {
		return err.Error()
	}
	return "ok"
}
