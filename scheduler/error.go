package scheduler

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidPeriod    = errors.New("invalid period")
	ErrInvalidTask      = errors.New("invalid task")
	ErrEmptyQueue       = errors.New("empty queue")
	ErrSchedulerStopped = errors.New("scheduler stopped")
	ErrAlreadyRunning   = errors.New("already running")
)

// RecoveredError is what a panicking task is turned into.
type RecoveredError struct {
	Recovered any
}

func (re *RecoveredError) Error() string {
	return fmt.Sprintf("task panicked and recovered. recovered value = %v", re.Recovered)
}

// Unwrap returns the panic value if it was an error.
func (re *RecoveredError) Unwrap() error {
	if err, ok := re.Recovered.(error); ok {
		return err
	}
	return nil
}

// TaskExecutionError wraps an error returned by, or a panic raised from, a task.
// It is passed to the error observer and never stops the loop.
type TaskExecutionError struct {
	Id  uuid.UUID
	Err error
}

func (e *TaskExecutionError) Error() string {
	return fmt.Sprintf("task execution error: id = %s, err = %v", e.Id, e.Err)
}

func (e *TaskExecutionError) Unwrap() error {
	return e.Err
}

func IsTaskExecutionError(err error) bool {
	var execErr *TaskExecutionError
	return errors.As(err, &execErr)
}

// IsRecovered reports whether err originates from a panic inside a task.
func IsRecovered(err error) bool {
	var recovered *RecoveredError
	return errors.As(err, &recovered)
}
