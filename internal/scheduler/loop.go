package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"dish-quiz/internal/port"
)

// ErrLoopClosed is returned by Do once the loop has stopped.
var ErrLoopClosed = errors.New("scheduler: event loop closed")

// Loop is a single-goroutine event loop. Timer callbacks and work submitted
// through Do all run serially on the goroutine executing Run, so state owned
// by the loop needs no locking.
type Loop struct {
	queue chan func()
	done  chan struct{}

	mu     sync.Mutex
	seq    uint64
	timers map[port.TimerHandle]*time.Timer

	closeOnce sync.Once
}

func NewLoop(buffer int) *Loop {
	if buffer < 1 {
		buffer = 1
	}
	return &Loop{
		queue:  make(chan func(), buffer),
		done:   make(chan struct{}),
		timers: make(map[port.TimerHandle]*time.Timer),
	}
}

// Run processes callbacks until ctx is canceled or Close is called.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.Close()
			return
		case <-l.done:
			return
		case fn := <-l.queue:
			fn()
		}
	}
}

// Do runs fn on the loop and waits for it. It must not be called from a
// callback already running on the loop.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopClosed
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrLoopClosed
	}
}

// Close stops the loop and every pending timer. It is idempotent.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		l.mu.Lock()
		for h, t := range l.timers {
			if t != nil {
				t.Stop()
			}
			delete(l.timers, h)
		}
		l.mu.Unlock()
	})
}

func (l *Loop) ScheduleOnce(delay time.Duration, fn func()) port.TimerHandle {
	h := l.register()
	t := time.AfterFunc(delay, func() {
		l.post(func() {
			if l.release(h) {
				fn()
			}
		})
	})
	l.attach(h, t)
	return h
}

func (l *Loop) ScheduleRepeating(interval time.Duration, fn func()) port.TimerHandle {
	if interval <= 0 {
		panic("scheduler: repeating interval must be positive")
	}
	h := l.register()
	var arm func()
	arm = func() {
		t := time.AfterFunc(interval, func() {
			l.post(func() {
				if !l.active(h) {
					return
				}
				fn()
				if l.active(h) {
					arm()
				}
			})
		})
		l.attach(h, t)
	}
	arm()
	return h
}

func (l *Loop) Cancel(handle port.TimerHandle) {
	l.mu.Lock()
	t, ok := l.timers[handle]
	delete(l.timers, handle)
	l.mu.Unlock()
	if ok && t != nil {
		t.Stop()
	}
}

func (l *Loop) post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.queue <- fn:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) register() port.TimerHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	h := port.TimerHandle(l.seq)
	l.timers[h] = nil
	return h
}

// attach records the timer backing h, or stops it when h was canceled
// in the meantime.
func (l *Loop) attach(h port.TimerHandle, t *time.Timer) {
	l.mu.Lock()
	_, ok := l.timers[h]
	if ok {
		l.timers[h] = t
	}
	l.mu.Unlock()
	if !ok {
		t.Stop()
	}
}

func (l *Loop) active(h port.TimerHandle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.timers[h]
	return ok
}

func (l *Loop) release(h port.TimerHandle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.timers[h]
	delete(l.timers, h)
	return ok
}
