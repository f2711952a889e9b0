package scheduler

import "sync/atomic"

// State is the state of the execution loop.
type State int32

const (
	// Idle means the queue is empty and the loop waits for a submission.
	Idle State = iota
	// Waiting means the loop sleeps until the earliest entry is due.
	Waiting
	// Running means the loop is executing a task.
	Running
	// Stopped is terminal.
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Waiting:
		return "waiting"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

type loopState struct {
	state int32
}

func (s *loopState) set(to State) {
	atomic.StoreInt32(&s.state, int32(to))
}

func (s *loopState) get() State {
	return State(atomic.LoadInt32(&s.state))
}
