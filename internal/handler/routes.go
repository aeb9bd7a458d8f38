package handler

import (
	"time"

	"dish-quiz/internal/config"
	"dish-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp creates the fiber app with the shared error handler and middleware
func NewApp(cfg config.ServerConfig, limiter *middleware.RateLimiter) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  orDefault(cfg.ReadTimeout, 20*time.Second),
		WriteTimeout: orDefault(cfg.WriteTimeout, 20*time.Second),
		IdleTimeout:  orDefault(cfg.IdleTimeout, 60*time.Second),
		BodyLimit:    64 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-Request-Id",
		MaxAge:       300,
	}))
	if limiter != nil {
		app.Use(limiter.Handler())
	}
	return app
}

// SetupRoutes registers every API route
func SetupRoutes(app *fiber.App, quiz *QuizHandler, health *HealthHandler) {
	app.Get("/healthz", health.Health)

	api := app.Group("/api")
	api.Get("/questions", quiz.GetQuestionBank)
	api.Post("/sessions", quiz.StartSession)

	vm := middleware.NewValidationMiddleware()
	sessions := api.Group("/sessions/:id", vm.ValidateSessionID())
	sessions.Get("", quiz.GetSession)
	sessions.Delete("", quiz.EndSession)
	sessions.Post("/answer", quiz.SubmitAnswer)
	sessions.Post("/next", quiz.Next)
	sessions.Post("/previous", quiz.Previous)
	sessions.Post("/restart", quiz.Restart)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
