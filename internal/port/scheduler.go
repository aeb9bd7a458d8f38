package port

import "time"

// TimerHandle identifies a scheduled callback. The zero value is never
// returned by a scheduler and can be used as "no timer".
type TimerHandle uint64

const NoTimer TimerHandle = 0

// Scheduler runs callbacks later on the caller's event loop. Implementations
// must never run a callback after Cancel returned for its handle.
type Scheduler interface {
	// ScheduleRepeating runs fn every interval until canceled.
	ScheduleRepeating(interval time.Duration, fn func()) TimerHandle

	// ScheduleOnce runs fn once after delay.
	ScheduleOnce(delay time.Duration, fn func()) TimerHandle

	// Cancel stops a pending callback. Unknown or spent handles are ignored.
	Cancel(handle TimerHandle)
}
