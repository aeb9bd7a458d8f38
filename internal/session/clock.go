package session

import (
	"context"

	"dish-quiz/internal/port"
	"dish-quiz/internal/scheduler"
)

// Clock is the event loop a session's engine lives on.
type Clock interface {
	port.Scheduler
	Do(ctx context.Context, fn func()) error
	Close()
}

// ClockFactory creates one Clock per session.
type ClockFactory func() Clock

const loopBuffer = 64

// NewLoopClock starts a real-time event loop goroutine. Closing the clock
// stops the goroutine.
func NewLoopClock() Clock {
	l := scheduler.NewLoop(loopBuffer)
	go l.Run(context.Background())
	return l
}
