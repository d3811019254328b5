package engine

import "time"

// MismatchDelay is how long a mismatched pair stays face up before the
// deferred clear fires. A deliberate UX pause, not a lock on other events.
const MismatchDelay = time.Second

// CancelFunc stops a scheduled task. It reports true if the task was
// prevented from running.
type CancelFunc func() bool

// Scheduler schedules the deferred mismatch clear. The default wraps
// time.AfterFunc; tests inject a manual scheduler and fire tasks by hand.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return t.Stop
}

// NewTimerScheduler returns the production Scheduler backed by time.AfterFunc.
func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}
