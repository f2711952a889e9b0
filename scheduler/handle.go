package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// Handle refers to a submitted entry.
// All methods are safe to call from any goroutine, including from inside the task itself.
type Handle struct {
	s     *Scheduler
	entry *Entry
}

func (h *Handle) Id() uuid.UUID {
	return h.entry.id
}

func (h *Handle) Mode() Mode {
	return h.entry.mode
}

func (h *Handle) Period() time.Duration {
	return h.entry.period
}

// Cancel stops future firings. An in-flight run is not interrupted.
// It returns false if the entry was already cancelled or will never fire again.
func (h *Handle) Cancel() bool {
	return h.s.Cancel(h)
}

// NextFireTime returns the time the entry is next eligible to run.
// ok is false while the entry is not queued: it is running, finished or cancelled.
func (h *Handle) NextFireTime() (next time.Time, ok bool) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	if h.entry.index < 0 {
		return time.Time{}, false
	}
	return h.entry.nextFireTime, true
}

// LastStartDelay is how late the most recent run started relative to its nominal fire time.
// It grows when earlier tasks keep the loop busy.
func (h *Handle) LastStartDelay() time.Duration {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.entry.lastStartDelay
}

// LastRunAt is when the most recent run started. Zero if it never ran.
func (h *Handle) LastRunAt() time.Time {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.entry.lastRunAt
}

func (h *Handle) Runs() int {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.entry.runs
}

func (h *Handle) Failures() int {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.entry.failures
}

func (h *Handle) IsCancelled() bool {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.entry.cancelled
}

// IsDone reports whether the entry will never fire again,
// because it was one-shot and ran, it was cancelled, or the scheduler stopped.
func (h *Handle) IsDone() bool {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()
	return h.entry.done || h.entry.cancelled
}
