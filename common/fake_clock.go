package common

import (
	"sync"
	"time"
)

type fakeWaiter struct {
	target time.Time
	done   chan struct{}
}

// FakeClock is a Clock whose time only moves when told to.
//
// In auto-advance mode WaitUntil jumps the clock to its target and returns at once,
// unless cancel is already ready. This makes a single-goroutine loop fully deterministic.
// In manual mode WaitUntil blocks until Advance/Set reaches the target or cancel fires.
type FakeClock struct {
	mu          sync.Mutex
	now         time.Time
	autoAdvance bool
	waiters     []*fakeWaiter
	waitingCh   chan time.Time
}

// NewFakeClock creates a manual-mode FakeClock set to now.
func NewFakeClock(now time.Time) *FakeClock {
	return &FakeClock{
		now:       now,
		waitingCh: make(chan time.Time, 64),
	}
}

// NewAutoAdvanceClock creates a FakeClock in auto-advance mode.
func NewAutoAdvanceClock(now time.Time) *FakeClock {
	c := NewFakeClock(now)
	c.autoAdvance = true
	return c
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and releases every waiter whose target is reached.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(c.now.Add(d))
}

// Set moves the clock to t. Moving backward is ignored.
func (c *FakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setLocked(t)
}

func (c *FakeClock) setLocked(t time.Time) {
	if t.After(c.now) {
		c.now = t
	}
	remaining := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.target.After(c.now) {
			close(w.done)
		} else {
			remaining = append(remaining, w)
		}
	}
	c.waiters = remaining
}

// Waiting returns a channel that receives the target of every blocking WaitUntil call
// in manual mode. Tests use it to learn that the loop went to sleep.
func (c *FakeClock) Waiting() <-chan time.Time {
	return c.waitingCh
}

func (c *FakeClock) WaitUntil(target time.Time, cancel <-chan struct{}) WaitResult {
	c.mu.Lock()
	if !target.After(c.now) {
		c.mu.Unlock()
		return TimedOut
	}

	// A pending cancellation wins over waiting in both modes.
	select {
	case <-cancel:
		c.mu.Unlock()
		return Cancelled
	default:
	}

	if c.autoAdvance {
		defer c.mu.Unlock()
		c.setLocked(target)
		return TimedOut
	}

	w := &fakeWaiter{target: target, done: make(chan struct{})}
	c.waiters = append(c.waiters, w)
	c.mu.Unlock()

	select {
	case c.waitingCh <- target:
	default:
	}

	select {
	case <-w.done:
		return TimedOut
	case <-cancel:
		c.removeWaiter(w)
		return Cancelled
	}
}

func (c *FakeClock) removeWaiter(w *fakeWaiter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, ww := range c.waiters {
		if ww == w {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return
		}
	}
}
