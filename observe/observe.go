package observe

import (
	"time"

	"github.com/ngicks/fixedtimer/scheduler"
)

var _ scheduler.Hooks = (*Observer)(nil)

// Observer adapts plain functions to scheduler.Hooks.
type Observer struct {
	startObserver func(h *scheduler.Handle, delay time.Duration)
	doneObserver  func(h *scheduler.Handle, elapsed time.Duration, err error)
}

// New creates an Observer. Either function may be nil.
func New(
	startObserver func(h *scheduler.Handle, delay time.Duration),
	doneObserver func(h *scheduler.Handle, elapsed time.Duration, err error),
) *Observer {
	if startObserver == nil {
		startObserver = func(*scheduler.Handle, time.Duration) {}
	}
	if doneObserver == nil {
		doneObserver = func(*scheduler.Handle, time.Duration, error) {}
	}
	return &Observer{
		startObserver: startObserver,
		doneObserver:  doneObserver,
	}
}

func (o *Observer) OnTaskStart(h *scheduler.Handle, delay time.Duration) {
	o.startObserver(h, delay)
}

func (o *Observer) OnTaskDone(h *scheduler.Handle, elapsed time.Duration, err error) {
	o.doneObserver(h, elapsed, err)
}
