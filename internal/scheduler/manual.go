package scheduler

import (
	"context"
	"time"

	"dish-quiz/internal/port"
)

// Manual is a deterministic scheduler driven by Advance. Callbacks run on
// the goroutine calling Advance, in due order and then creation order.
// It is meant for tests and is not safe for concurrent use.
type Manual struct {
	now   time.Duration
	seq   uint64
	tasks map[port.TimerHandle]*manualTask
}

type manualTask struct {
	handle   port.TimerHandle
	due      time.Duration
	interval time.Duration
	fn       func()
}

func NewManual() *Manual {
	return &Manual{tasks: make(map[port.TimerHandle]*manualTask)}
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns how many callbacks are still scheduled.
func (m *Manual) Pending() int {
	return len(m.tasks)
}

func (m *Manual) ScheduleRepeating(interval time.Duration, fn func()) port.TimerHandle {
	if interval <= 0 {
		panic("scheduler: repeating interval must be positive")
	}
	return m.add(interval, interval, fn)
}

func (m *Manual) ScheduleOnce(delay time.Duration, fn func()) port.TimerHandle {
	if delay < 0 {
		delay = 0
	}
	return m.add(delay, 0, fn)
}

func (m *Manual) add(delay, interval time.Duration, fn func()) port.TimerHandle {
	m.seq++
	h := port.TimerHandle(m.seq)
	m.tasks[h] = &manualTask{handle: h, due: m.now + delay, interval: interval, fn: fn}
	return h
}

func (m *Manual) Cancel(handle port.TimerHandle) {
	delete(m.tasks, handle)
}

// Advance moves virtual time forward by d, firing every callback that
// becomes due, including ones scheduled by callbacks along the way.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.due
		if t.interval > 0 {
			t.due += t.interval
		} else {
			delete(m.tasks, t.handle)
		}
		t.fn()
	}
	m.now = target
}

func (m *Manual) next(limit time.Duration) *manualTask {
	var best *manualTask
	for _, t := range m.tasks {
		if t.due > limit {
			continue
		}
		if best == nil || t.due < best.due || (t.due == best.due && t.handle < best.handle) {
			best = t
		}
	}
	return best
}

// Do runs fn immediately; Manual has no separate loop goroutine.
func (m *Manual) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn()
	return nil
}

// Close drops every pending callback.
func (m *Manual) Close() {
	m.tasks = make(map[port.TimerHandle]*manualTask)
}
