package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"dish-quiz/internal/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_RepeatingAndOnce(t *testing.T) {
	m := NewManual()
	var ticks []time.Duration
	var once []time.Duration

	m.ScheduleRepeating(time.Second, func() { ticks = append(ticks, m.Now()) })
	m.ScheduleOnce(2500*time.Millisecond, func() { once = append(once, m.Now()) })

	m.Advance(3 * time.Second)

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}, ticks)
	assert.Equal(t, []time.Duration{2500 * time.Millisecond}, once)
	assert.Equal(t, 3*time.Second, m.Now())
	assert.Equal(t, 1, m.Pending())
}

func TestManual_CancelFromCallback(t *testing.T) {
	m := NewManual()
	count := 0
	var stopper func()
	h2 := m.ScheduleRepeating(time.Second, func() { stopper() })
	stopper = func() {
		count++
		if count == 2 {
			m.Cancel(h2)
		}
	}

	m.Advance(10 * time.Second)
	assert.Equal(t, 2, count)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_SameDueRunsInCreationOrder(t *testing.T) {
	m := NewManual()
	var order []string
	m.ScheduleOnce(time.Second, func() { order = append(order, "first") })
	m.ScheduleOnce(time.Second, func() { order = append(order, "second") })
	m.ScheduleOnce(0, func() { order = append(order, "now") })

	m.Advance(time.Second)
	assert.Equal(t, []string{"now", "first", "second"}, order)
}

func TestManual_CallbackSchedulesWithinWindow(t *testing.T) {
	m := NewManual()
	fired := false
	m.ScheduleOnce(time.Second, func() {
		m.ScheduleOnce(time.Second, func() { fired = true })
	})

	m.Advance(1500 * time.Millisecond)
	assert.False(t, fired)
	m.Advance(500 * time.Millisecond)
	assert.True(t, fired)
}

func TestManual_Do(t *testing.T) {
	m := NewManual()
	ran := false
	require.NoError(t, m.Do(context.Background(), func() { ran = true }))
	assert.True(t, ran)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Do(ctx, func() {}), context.Canceled)
}

func runLoop(t *testing.T) *Loop {
	t.Helper()
	l := NewLoop(16)
	ctx, cancel := context.WithCancel(context.Background())
	go l.Run(ctx)
	t.Cleanup(func() {
		cancel()
		l.Close()
	})
	return l
}

func TestLoop_DoRunsOnLoop(t *testing.T) {
	l := runLoop(t)
	value := 0
	require.NoError(t, l.Do(context.Background(), func() { value = 42 }))
	assert.Equal(t, 42, value)
}

func TestLoop_ScheduleOnceFires(t *testing.T) {
	l := runLoop(t)
	fired := make(chan struct{})
	l.ScheduleOnce(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("one-shot callback did not fire")
	}
}

func TestLoop_RepeatingStopsAfterCancel(t *testing.T) {
	l := runLoop(t)
	var count int32
	done := make(chan struct{})

	// Scheduled from the loop so the handle is written before any tick reads it.
	require.NoError(t, l.Do(context.Background(), func() {
		var repeating port.TimerHandle
		repeating = l.ScheduleRepeating(2*time.Millisecond, func() {
			if atomic.AddInt32(&count, 1) == 3 {
				l.Cancel(repeating)
				close(done)
			}
		})
	}))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("repeating callback did not run three times")
	}
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(3), atomic.LoadInt32(&count))
}

func TestLoop_CancelledOnceNeverRuns(t *testing.T) {
	l := runLoop(t)
	var fired int32
	h := l.ScheduleOnce(5*time.Millisecond, func() { atomic.StoreInt32(&fired, 1) })
	l.Cancel(h)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestLoop_DoAfterClose(t *testing.T) {
	l := NewLoop(1)
	l.Close()
	l.Close()
	assert.ErrorIs(t, l.Do(context.Background(), func() {}), ErrLoopClosed)
}
