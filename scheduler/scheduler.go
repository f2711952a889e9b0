package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ngicks/fixedtimer/common"
	"go.uber.org/zap"
)

// Scheduler runs submitted tasks one at a time on the goroutine calling Run.
//
// Submission and cancellation are safe from any goroutine. The mutex guards
// the queue only for the duration of a mutation; it is never held while a task runs.
type Scheduler struct {
	mu      sync.Mutex
	queue   *TimerQueue
	seq     uint64
	running *Entry
	stopped bool
	runDone chan struct{}
	// loopG is the goroutine running Run, 0 if none.
	loopG   uint64

	state  loopState
	wakeCh chan struct{}

	clock      common.Clock
	logger     *zap.Logger
	observer   ErrorObserver
	hooks      hookList
	mw         []Middleware
	maxCatchUp int
}

func New(options ...Option) *Scheduler {
	s := &Scheduler{
		queue:  NewTimerQueue(),
		wakeCh: make(chan struct{}, 1),
		clock:  common.NewRealClock(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(s)
	}
	if s.observer == nil {
		s.observer = s.logFailure
	}
	return s
}

// ScheduleOnce runs task once at startTime.
// A startTime at or before now makes it eligible immediately. A zero startTime means now.
func (s *Scheduler) ScheduleOnce(task Task, startTime time.Time) (*Handle, error) {
	return s.schedule(task, startTime, 0, FixedDelay)
}

// ScheduleFixedDelay runs task at startTime, then period after each run completes.
// A past startTime leads to exactly one immediate run; missed ticks are not replayed.
func (s *Scheduler) ScheduleFixedDelay(task Task, startTime time.Time, period time.Duration) (*Handle, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive, but is %s", ErrInvalidPeriod, period)
	}
	return s.schedule(task, startTime, period, FixedDelay)
}

// ScheduleFixedRate runs task at startTime + k*period for k = 0, 1, 2, ...
//
// If startTime is in the past, every elapsed tick is replayed back to back
// (bounded by WithMaxCatchUp), then runs continue on the nominal grid.
// A run overrunning one or more later ticks skips them.
func (s *Scheduler) ScheduleFixedRate(task Task, startTime time.Time, period time.Duration) (*Handle, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive, but is %s", ErrInvalidPeriod, period)
	}
	return s.schedule(task, startTime, period, FixedRate)
}

func (s *Scheduler) schedule(task Task, startTime time.Time, period time.Duration, mode Mode) (*Handle, error) {
	if task == nil {
		return nil, fmt.Errorf("%w: task is nil", ErrInvalidTask)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil, ErrSchedulerStopped
	}

	now := s.clock.Now()
	if startTime.IsZero() {
		startTime = now
	}

	s.seq++
	entry := NewEntry(task, startTime, period, mode, s.seq)
	entry.handle = &Handle{s: s, entry: entry}
	entry.task = s.applyMiddleware(entry.handle, task)

	if mode == FixedRate {
		first, owed, dropped := catchUpTicks(startTime, now, period, s.maxCatchUp)
		entry.nextFireTime = first
		entry.catchUp = owed
		if dropped > 0 {
			s.logger.Warn(
				"catch-up capped",
				zap.Stringer("task_id", entry.id),
				zap.Int64("dropped_ticks", dropped),
				zap.Int("max_catch_up", s.maxCatchUp),
			)
		}
	}

	s.queue.Insert(entry)

	s.logger.Debug(
		"task scheduled",
		zap.Stringer("task_id", entry.id),
		zap.Stringer("mode", mode),
		zap.Duration("period", period),
		zap.Time("next_fire_time", entry.nextFireTime),
		zap.Int64("catch_up", entry.catchUp),
	)

	if s.queue.Peek() == entry {
		s.wake()
	}

	return entry.handle, nil
}

// Cancel removes the entry so that it never fires again.
// A run already in flight is not interrupted, but it is not rescheduled.
// It returns false if h was already cancelled, finished or belongs to another Scheduler.
func (s *Scheduler) Cancel(h *Handle) bool {
	if h == nil || h.s != s {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry := h.entry
	if entry.cancelled || entry.done {
		return false
	}

	removed := s.queue.Remove(entry)
	if !removed && s.running != entry {
		return false
	}

	entry.cancelled = true
	s.logger.Debug("task cancelled", zap.Stringer("task_id", entry.id), zap.Bool("in_flight", !removed))
	if removed {
		s.wake()
	}
	return true
}

// Len returns number of queued entries. An entry being run is not counted.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

func (s *Scheduler) State() State {
	return s.state.get()
}

// Stop stops the scheduler permanently.
//
// Pending entries are dropped, and further submissions fail with ErrSchedulerStopped.
// If the loop is running a task, Stop waits for it to return or for ctx to be done.
// Called from the loop goroutine itself (within a task, a hook or the error observer)
// Stop returns without waiting; the loop exits once the caller returns.
// Calling Stop more than once is allowed.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.stopped {
		s.stopped = true
		s.state.set(Stopped)
		for s.queue.Len() > 0 {
			entry, _ := s.queue.RemoveEarliest()
			entry.done = true
		}
		s.logger.Debug("scheduler stopped")
	}
	runDone := s.runDone
	loopG := s.loopG
	s.mu.Unlock()

	s.wake()

	if runDone == nil || (loopG != 0 && loopG == goroutineID()) {
		return nil
	}
	select {
	case <-runDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) wake() {
	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}

func (s *Scheduler) logFailure(h *Handle, err error) {
	s.logger.Error(
		"task failed",
		zap.Stringer("task_id", h.Id()),
		zap.Stringer("mode", h.Mode()),
		zap.Error(err),
	)
}
