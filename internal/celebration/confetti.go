package celebration

import (
	"sync"
	"time"

	"dish-quiz/internal/logger"
	"dish-quiz/internal/port"

	"go.uber.org/zap"
)

const DefaultDuration = 5 * time.Second

// Confetti is a celebration that stays active for a fixed duration after a
// perfect score. Celebrate runs on the scheduler's loop; Active may be read
// from any goroutine.
type Confetti struct {
	sched    port.Scheduler
	duration time.Duration

	mu     sync.Mutex
	active bool
	handle port.TimerHandle
	bursts int
}

func NewConfetti(sched port.Scheduler, duration time.Duration) *Confetti {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Confetti{sched: sched, duration: duration}
}

// Celebrate starts the effect, or extends it when it is already running.
func (c *Confetti) Celebrate(score, total int) {
	c.mu.Lock()
	if c.handle != port.NoTimer {
		c.sched.Cancel(c.handle)
	}
	c.active = true
	c.bursts++
	c.mu.Unlock()

	logger.Get().Info("Perfect score, launching confetti",
		zap.Int("score", score),
		zap.Int("total", total),
		zap.Duration("duration", c.duration),
	)

	h := c.sched.ScheduleOnce(c.duration, c.stop)
	c.mu.Lock()
	c.handle = h
	c.mu.Unlock()
}

func (c *Confetti) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = false
	c.handle = port.NoTimer
}

// Active reports whether the confetti is still falling.
func (c *Confetti) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Bursts counts how many times Celebrate was triggered.
func (c *Confetti) Bursts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bursts
}

// Stop ends the effect early.
func (c *Confetti) Stop() {
	c.mu.Lock()
	h := c.handle
	c.mu.Unlock()
	if h != port.NoTimer {
		c.sched.Cancel(h)
	}
	c.stop()
}
