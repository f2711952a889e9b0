package common

import "time"

// WaitResult tells why WaitUntil returned.
type WaitResult int

const (
	// TimedOut means the target time has been reached.
	TimedOut WaitResult = iota
	// Cancelled means the cancel channel fired before the target time.
	Cancelled
)

func (r WaitResult) String() string {
	switch r {
	case TimedOut:
		return "timed_out"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Clock is the time source of the scheduler.
type Clock interface {
	Now() time.Time
	// WaitUntil blocks until target is reached or cancel receives/closes.
	// A target that is not after Now returns TimedOut without blocking.
	WaitUntil(target time.Time, cancel <-chan struct{}) WaitResult
}

// RealClock is a Clock backed by time.Now and time.Timer.
// The zero value is ready to use.
type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (c RealClock) WaitUntil(target time.Time, cancel <-chan struct{}) WaitResult {
	d := target.Sub(c.Now())
	if d <= 0 {
		return TimedOut
	}

	timer := time.NewTimer(d)
	defer func() {
		if !timer.Stop() {
			// non-blocking receive.
			// in case it already fired and nobody received.
			select {
			case <-timer.C:
			default:
			}
		}
	}()

	select {
	case <-timer.C:
		return TimedOut
	case <-cancel:
		return Cancelled
	}
}
