package service

import (
	"context"

	"dish-quiz/internal/config"
	"dish-quiz/internal/domain"
	"dish-quiz/internal/dto"
	"dish-quiz/internal/engine"
	"dish-quiz/internal/logger"
	"dish-quiz/internal/session"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// QuizService defines the interface for quiz session operations
type QuizService interface {
	StartSession(ctx context.Context) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	SelectOption(ctx context.Context, sessionID string, optionIndex int) (*dto.SessionResponse, error)
	Next(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Previous(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	Restart(ctx context.Context, sessionID string) (*dto.SessionResponse, error)
	EndSession(ctx context.Context, sessionID string) error
	GetQuestionBank(ctx context.Context) (*dto.QuestionBankResponse, error)
	ActiveSessions() int
}

// quizService implements QuizService
type quizService struct {
	bank     QuestionBankService
	sessions *session.Manager
	cfg      config.QuizConfig
}

// NewQuizService creates a new instance of quizService
func NewQuizService(bank QuestionBankService, sessions *session.Manager, cfg config.QuizConfig) QuizService {
	return &quizService{
		bank:     bank,
		sessions: sessions,
		cfg:      cfg,
	}
}

// StartSession implements QuizService
func (s *quizService) StartSession(ctx context.Context) (*dto.SessionResponse, error) {
	questions, err := s.bank.Load(ctx)
	if err != nil {
		return nil, err
	}
	questions = s.prepare(questions)

	sess, err := s.sessions.Create(ctx, questions)
	if err != nil {
		return nil, err
	}
	return s.toResponse(sess), nil
}

func (s *quizService) prepare(questions []domain.Question) []domain.Question {
	out := copyQuestions(questions)
	if s.cfg.Shuffle {
		out = lo.Shuffle(out)
	}
	if s.cfg.Limit > 0 && s.cfg.Limit < len(out) {
		out = out[:s.cfg.Limit]
	}
	return out
}

// GetSession implements QuizService
func (s *quizService) GetSession(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(sess), nil
}

// SelectOption implements QuizService
func (s *quizService) SelectOption(ctx context.Context, sessionID string, optionIndex int) (*dto.SessionResponse, error) {
	return s.apply(ctx, sessionID, func(e *engine.Engine) error {
		if e.State().Phase == domain.PhaseFinished {
			return domain.NewQuizFinishedError()
		}
		return e.SelectOption(optionIndex)
	})
}

// Next implements QuizService. It is a no-op once the quiz has finished.
func (s *quizService) Next(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	return s.apply(ctx, sessionID, func(e *engine.Engine) error {
		e.Advance()
		return nil
	})
}

// Previous implements QuizService
func (s *quizService) Previous(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	return s.apply(ctx, sessionID, func(e *engine.Engine) error {
		return e.GoToPrevious()
	})
}

// Restart implements QuizService
func (s *quizService) Restart(ctx context.Context, sessionID string) (*dto.SessionResponse, error) {
	return s.apply(ctx, sessionID, func(e *engine.Engine) error {
		e.Restart()
		return nil
	})
}

// EndSession implements QuizService
func (s *quizService) EndSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// GetQuestionBank implements QuizService
func (s *quizService) GetQuestionBank(ctx context.Context) (*dto.QuestionBankResponse, error) {
	questions, err := s.bank.Load(ctx)
	if err != nil {
		return nil, err
	}
	summaries := lo.Map(questions, func(q domain.Question, i int) dto.QuestionSummary {
		return dto.QuestionSummary{
			Position: i + 1,
			Question: q.Text,
			Options:  q.Options,
		}
	})
	return &dto.QuestionBankResponse{
		Source:    s.bank.Source(),
		Total:     len(summaries),
		Questions: summaries,
	}, nil
}

func (s *quizService) ActiveSessions() int {
	return s.sessions.Len()
}

func (s *quizService) apply(ctx context.Context, sessionID string, fn func(e *engine.Engine) error) (*dto.SessionResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Do(ctx, fn); err != nil {
		logger.Get().Debug("Quiz action rejected", zap.String("session_id", sessionID), zap.Error(err))
		return nil, err
	}
	return s.toResponse(sess), nil
}

func (s *quizService) toResponse(sess *session.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		SessionID:   sess.ID,
		Celebrating: sess.Celebrating(),
		ExpiresAt:   s.sessions.ExpiresAt(sess),
		QuizView:    sess.View(),
	}
}
