package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dish-quiz/internal/cache"
	"dish-quiz/internal/config"
	"dish-quiz/internal/domain"
	"dish-quiz/internal/logger"
	"dish-quiz/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuestionBankService provides the question sequence new sessions run on
type QuestionBankService interface {
	Load(ctx context.Context) ([]domain.Question, error)
	Source() string
	Invalidate(ctx context.Context) error
}

type questionBankService struct {
	source   string
	repo     domain.QuestionRepository
	cache    domain.Cache
	ttl      time.Duration
	fallback func() ([]domain.Question, error)
	group    singleflight.Group
}

// NewQuestionBankService creates a bank reading from source. repo and cache
// may be nil; without a repo the built-in bank is served.
func NewQuestionBankService(source string, repo domain.QuestionRepository, cache domain.Cache, ttl time.Duration) QuestionBankService {
	if repo == nil {
		source = config.SourceEmbedded
	}
	return &questionBankService{
		source:   source,
		repo:     repo,
		cache:    cache,
		ttl:      ttl,
		fallback: repository.DefaultQuestions,
	}
}

func (s *questionBankService) Source() string {
	return s.source
}

// Load implements QuestionBankService
func (s *questionBankService) Load(ctx context.Context) ([]domain.Question, error) {
	if s.source != config.SourceDatabase {
		return s.fallback()
	}

	key := cache.QuestionBankKey(s.source)
	if questions, ok := s.fromCache(ctx, key); ok {
		return questions, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.repo.ListQuestions(ctx)
	})
	var questions []domain.Question
	if err == nil {
		questions = v.([]domain.Question)
	}
	if err != nil || len(questions) == 0 {
		logger.Get().Warn("Question bank unavailable in database, using built-in questions",
			zap.Error(err),
			zap.Int("count", len(questions)),
		)
		return s.fallback()
	}
	if err := domain.ValidateBank(questions); err != nil {
		return nil, err
	}

	s.toCache(ctx, key, questions)
	return copyQuestions(questions), nil
}

// Invalidate drops the cached bank so the next Load reads the database.
func (s *questionBankService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, cache.QuestionBankKey(s.source)); err != nil {
		return domain.NewInternalError("failed to invalidate question bank cache", err)
	}
	return nil
}

func (s *questionBankService) fromCache(ctx context.Context, key string) ([]domain.Question, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Question bank cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil || len(questions) == 0 {
		logger.Get().Warn("Discarding unreadable question bank cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return questions, true
}

func (s *questionBankService) toCache(ctx context.Context, key string, questions []domain.Question) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		logger.Get().Warn("Failed to encode question bank for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		logger.Get().Warn("Failed to cache question bank", zap.String("key", key), zap.Error(err))
	}
}

func copyQuestions(questions []domain.Question) []domain.Question {
	out := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
