package achievement

import "time"

type CancelFunc func()

// Scheduler runs a callback after a delay. It exists so expiry behavior
// can be driven deterministically in tests.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) CancelFunc
}

type timerScheduler struct{}

func NewTimerScheduler() Scheduler {
	return timerScheduler{}
}

func (timerScheduler) Schedule(delay time.Duration, fn func()) CancelFunc {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}
