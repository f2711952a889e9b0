package scheduler

import "time"

// Hooks observes every execution. Methods are called on the loop goroutine,
// so a slow hook delays every following task.
type Hooks interface {
	// OnTaskStart is called right before a task runs.
	// delay is the actual start time minus the nominal fire time.
	OnTaskStart(h *Handle, delay time.Duration)
	// OnTaskDone is called after a task returned, and after the error observer if it failed.
	OnTaskDone(h *Handle, elapsed time.Duration, err error)
}

// NopHooks does nothing.
type NopHooks struct{}

func (NopHooks) OnTaskStart(_ *Handle, _ time.Duration)        {}
func (NopHooks) OnTaskDone(_ *Handle, _ time.Duration, _ error) {}

type hookList []Hooks

func (l hookList) OnTaskStart(h *Handle, delay time.Duration) {
	for _, hook := range l {
		hook.OnTaskStart(h, delay)
	}
}

func (l hookList) OnTaskDone(h *Handle, elapsed time.Duration, err error) {
	for _, hook := range l {
		hook.OnTaskDone(h, elapsed, err)
	}
}
