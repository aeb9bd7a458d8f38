package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"dish-quiz/internal/adapter"
	"dish-quiz/internal/cache"
	"dish-quiz/internal/config"
	"dish-quiz/internal/database"
	"dish-quiz/internal/domain"
	"dish-quiz/internal/engine"
	"dish-quiz/internal/handler"
	"dish-quiz/internal/logger"
	"dish-quiz/internal/middleware"
	"dish-quiz/internal/repository"
	"dish-quiz/internal/service"
	"dish-quiz/internal/session"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Get().Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Get().Info("Server exited gracefully")
}

func run(cfg *config.Config) error {
	appLogger := logger.Get()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		db   *sqlx.DB
		repo domain.QuestionRepository
	)
	if cfg.Quiz.Source == config.SourceDatabase {
		var err error
		db, err = database.Open(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(db.DB, cfg.DB.Driver, database.Up); err != nil {
			return err
		}
		repo = repository.NewQuestionDatabaseAdapter(db)
	}

	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			// The bank still loads without a cache.
			appLogger.Warn("Redis unavailable, running without cache", zap.Error(err))
		} else {
			defer redisClient.Close()
			cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Redis cache initialized", zap.String("address", cfg.Redis.Address))
		}
	}

	bank := service.NewQuestionBankService(cfg.Quiz.Source, repo, cacheAdapter, cfg.Cache.QuestionBankTTL)
	questions, err := bank.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load question bank: %w", err)
	}
	appLogger.Info("Question bank loaded", zap.String("source", bank.Source()), zap.Int("questions", len(questions)))

	sessions := session.NewManager(sessionOptions(cfg), session.NewLoopClock)
	defer sessions.Close()
	if err := sessions.StartSweeper(cfg.Session.SweepInterval); err != nil {
		return err
	}

	quizService := service.NewQuizService(bank, sessions, cfg.Quiz)

	var pinger handler.Pinger
	if db != nil {
		pinger = db
	}
	app := handler.NewApp(cfg.Server, middleware.NewRateLimiter(cfg.RateLimit))
	handler.SetupRoutes(app,
		handler.NewQuizHandler(quizService),
		handler.NewHealthHandler(quizService, pinger, cacheAdapter),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		return app.Listen(":" + strconv.Itoa(cfg.Server.Port))
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func sessionOptions(cfg *config.Config) session.Options {
	return session.Options{
		Engine: engine.Options{
			TimerDuration:   cfg.Quiz.TimerDuration,
			UrgentThreshold: cfg.Quiz.UrgentThreshold,
			TickInterval:    cfg.Quiz.TickInterval,
			AdvanceDelay:    cfg.Quiz.AdvanceDelay,
		},
		CelebrationDuration: cfg.Quiz.CelebrationDuration,
		TTL:                 cfg.Session.TTL,
		MaxActive:           cfg.Session.MaxActive,
	}
}
