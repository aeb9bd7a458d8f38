package session

import (
	"context"
	"sync"
	"time"

	"dish-quiz/internal/celebration"
	"dish-quiz/internal/dto"
	"dish-quiz/internal/engine"
	"dish-quiz/internal/view"
)

// Session is one player's quiz. The engine is only touched from the
// session's clock loop; the view and celebration are safe to read anywhere.
type Session struct {
	ID        string
	CreatedAt time.Time

	clock    Clock
	engine   *engine.Engine
	recorder *view.Recorder
	confetti *celebration.Confetti

	mu         sync.Mutex
	lastAccess time.Time
}

// Do runs fn against the engine on the session loop.
func (s *Session) Do(ctx context.Context, fn func(e *engine.Engine) error) error {
	var err error
	if loopErr := s.clock.Do(ctx, func() { err = fn(s.engine) }); loopErr != nil {
		return loopErr
	}
	return err
}

// View returns the current presentation state.
func (s *Session) View() dto.QuizView {
	return s.recorder.Snapshot()
}

// Celebrating reports whether the perfect-score celebration is running.
func (s *Session) Celebrating() bool {
	return s.confetti.Active()
}

// LastAccess returns when the session was last used.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccess = now
	s.mu.Unlock()
}

func (s *Session) close() {
	_ = s.clock.Do(context.Background(), func() {
		s.engine.Close()
		s.confetti.Stop()
	})
	s.clock.Close()
}
