package scheduler

import (
	"github.com/ngicks/fixedtimer/common"
	"go.uber.org/zap"
)

// ErrorObserver receives every task failure, wrapped in *TaskExecutionError.
// It is called on the loop goroutine, before the failed entry is rescheduled.
type ErrorObserver = func(h *Handle, err error)

type Option func(s *Scheduler)

// WithClock replaces the default real clock.
func WithClock(clock common.Clock) Option {
	return func(s *Scheduler) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the logger. zap.NewNop is used by default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorObserver replaces the default observer, which logs the failure at error level.
func WithErrorObserver(observer ErrorObserver) Option {
	return func(s *Scheduler) {
		if observer != nil {
			s.observer = observer
		}
	}
}

// WithHooks appends hooks. Hooks are called in the order they are added.
func WithHooks(hooks ...Hooks) Option {
	return func(s *Scheduler) {
		for _, h := range hooks {
			if h != nil {
				s.hooks = append(s.hooks, h)
			}
		}
	}
}

// WithMaxCatchUp caps the number of runs a fixed-rate entry replays when it is
// submitted with a start time in the past. n <= 0 means unbounded.
func WithMaxCatchUp(n int) Option {
	return func(s *Scheduler) {
		if n < 0 {
			n = 0
		}
		s.maxCatchUp = n
	}
}
