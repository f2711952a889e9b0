package scheduler

import (
	"context"

	"go.uber.org/zap"
)

// Run executes due entries on the calling goroutine until ctx is done or Stop is called.
//
// Cancelling ctx only ends this call; Run can be called again later.
// ErrAlreadyRunning is returned if another Run is active,
// ErrSchedulerStopped if Stop has been called.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrSchedulerStopped
	}
	if s.runDone != nil {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	runDone := make(chan struct{})
	s.runDone = runDone
	s.loopG = goroutineID()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.runDone = nil
		s.loopG = 0
		if !s.stopped {
			s.state.set(Idle)
		}
		s.mu.Unlock()
		close(runDone)
	}()

	stopWatching := context.AfterFunc(ctx, s.wake)
	defer stopWatching()

	for {
		entry, ok := s.next(ctx)
		if !ok {
			return nil
		}
		s.execute(entry)
	}
}

// next blocks until the earliest entry is due and pops it.
// ok is false if the loop must exit.
func (s *Scheduler) next(ctx context.Context) (entry *Entry, ok bool) {
	for {
		s.mu.Lock()
		if s.stopped || ctx.Err() != nil {
			s.mu.Unlock()
			return nil, false
		}

		earliest := s.queue.Peek()
		if earliest == nil {
			s.state.set(Idle)
			s.mu.Unlock()
			<-s.wakeCh
			continue
		}

		if target := earliest.nextFireTime; target.After(s.clock.Now()) {
			s.state.set(Waiting)
			s.mu.Unlock()
			// Woken up by a submission, a cancellation or shutdown. Re-evaluate in any case.
			s.clock.WaitUntil(target, s.wakeCh)
			continue
		}

		entry, _ = s.queue.RemoveEarliest()
		s.running = entry
		s.state.set(Running)
		s.mu.Unlock()
		return entry, true
	}
}

func (s *Scheduler) execute(entry *Entry) {
	h := entry.handle

	startedAt := s.clock.Now()
	delay := startedAt.Sub(entry.nextFireTime)

	s.mu.Lock()
	entry.lastStartDelay = delay
	entry.lastRunAt = startedAt
	entry.runs++
	s.mu.Unlock()

	s.callHook("OnTaskStart", h, func() { s.hooks.OnTaskStart(h, delay) })

	err := runTask(entry.task)
	completedAt := s.clock.Now()

	if err != nil {
		err = &TaskExecutionError{Id: entry.id, Err: err}
		s.mu.Lock()
		entry.failures++
		s.mu.Unlock()
		s.notifyFailure(h, err)
	}

	s.callHook("OnTaskDone", h, func() { s.hooks.OnTaskDone(h, completedAt.Sub(startedAt), err) })

	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = nil
	if entry.cancelled || s.stopped {
		entry.done = true
		return
	}

	rescheduled, skipped := entry.reschedule(completedAt)
	if !rescheduled {
		entry.done = true
		return
	}
	if skipped > 0 {
		s.logger.Debug(
			"overrun ticks skipped",
			zap.Stringer("task_id", entry.id),
			zap.Int64("skipped", skipped),
		)
	}
	s.queue.Insert(entry)
}

// notifyFailure calls the observer. A panicking observer must not take the loop down with it.
func (s *Scheduler) notifyFailure(h *Handle, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			s.logger.Error(
				"error observer panicked",
				zap.Stringer("task_id", h.Id()),
				zap.Any("recovered", recovered),
				zap.NamedError("task_err", err),
			)
		}
	}()
	s.observer(h, err)
}

// callHook calls fn, recovering a panicking Hooks implementation.
func (s *Scheduler) callHook(name string, h *Handle, fn func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			s.logger.Error(
				"hook panicked",
				zap.String("hook", name),
				zap.Stringer("task_id", h.Id()),
				zap.Any("recovered", recovered),
			)
		}
	}()
	fn()
}
