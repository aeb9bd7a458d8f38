package session

import (
	"context"
	"sync"
	"time"

	"dish-quiz/internal/celebration"
	"dish-quiz/internal/domain"
	"dish-quiz/internal/engine"
	"dish-quiz/internal/logger"
	"dish-quiz/internal/util"
	"dish-quiz/internal/view"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Options configures every session created by a Manager.
type Options struct {
	Engine              engine.Options
	CelebrationDuration time.Duration
	TTL                 time.Duration
	MaxActive           int
}

// Manager owns the live sessions and evicts idle ones.
type Manager struct {
	opts     Options
	newClock ClockFactory
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session

	cron *gocron.Scheduler
}

func NewManager(opts Options, newClock ClockFactory) *Manager {
	if newClock == nil {
		newClock = NewLoopClock
	}
	return &Manager{
		opts:     opts,
		newClock: newClock,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new quiz session over questions.
func (m *Manager) Create(ctx context.Context, questions []domain.Question) (*Session, error) {
	if err := domain.ValidateBank(questions); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if m.opts.MaxActive > 0 && len(m.sessions) >= m.opts.MaxActive {
		m.mu.Unlock()
		return nil, domain.NewTooManySessionsError(m.opts.MaxActive)
	}
	m.mu.Unlock()

	id := util.NewULID()
	clock := m.newClock()
	recorder := view.NewRecorder()
	confetti := celebration.NewConfetti(clock, m.opts.CelebrationDuration)

	e, err := engine.New(engine.Config{
		Questions:  questions,
		Scheduler:  clock,
		Observer:   recorder,
		Celebrator: confetti,
		Logger:     logger.Session(id),
		Options:    m.opts.Engine,
	})
	if err != nil {
		clock.Close()
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:         id,
		CreatedAt:  now,
		clock:      clock,
		engine:     e,
		recorder:   recorder,
		confetti:   confetti,
		lastAccess: now,
	}
	if err := clock.Do(ctx, e.Start); err != nil {
		clock.Close()
		return nil, domain.NewInternalError("failed to start quiz", err)
	}

	m.mu.Lock()
	if m.opts.MaxActive > 0 && len(m.sessions) >= m.opts.MaxActive {
		m.mu.Unlock()
		s.close()
		return nil, domain.NewTooManySessionsError(m.opts.MaxActive)
	}
	m.sessions[s.ID] = s
	m.mu.Unlock()

	logger.Session(id).Info("Quiz session started", zap.Int("questions", len(questions)))
	return s, nil
}

// Get returns a live session and marks it as used.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.NewSessionNotFoundError(id)
	}
	s.touch(m.now())
	return s, nil
}

// Delete ends a session and stops its clock.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return domain.NewSessionNotFoundError(id)
	}
	s.close()
	logger.Session(id).Info("Quiz session ended")
	return nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ExpiresAt returns when s becomes eligible for eviction.
func (m *Manager) ExpiresAt(s *Session) time.Time {
	if m.opts.TTL <= 0 {
		return time.Time{}
	}
	return s.LastAccess().Add(m.opts.TTL)
}

// SweepIdle closes every session unused for longer than the TTL and returns
// how many were evicted.
func (m *Manager) SweepIdle(now time.Time) int {
	if m.opts.TTL <= 0 {
		return 0
	}
	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.LastAccess()) > m.opts.TTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		logger.Get().Info("Evicted idle quiz sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// StartSweeper runs SweepIdle every interval in the background.
func (m *Manager) StartSweeper(interval time.Duration) error {
	if interval <= 0 || m.opts.TTL <= 0 {
		return nil
	}
	s := gocron.NewScheduler(time.UTC)
	if _, err := s.Every(interval).Do(func() { m.SweepIdle(m.now()) }); err != nil {
		return domain.NewInternalError("failed to schedule session sweeper", err)
	}
	s.StartAsync()
	m.cron = s
	return nil
}

// Close stops the sweeper and every live session.
func (m *Manager) Close() {
	if m.cron != nil {
		m.cron.Stop()
	}
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}
