package scheduler

// Task is a unit of work. A non-nil error or a panic is reported as a failure.
type Task interface {
	Run() error
}

// TaskFunc adapts an ordinary function to Task.
type TaskFunc func() error

func (f TaskFunc) Run() error {
	return f()
}

func runTask(task Task) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &RecoveredError{Recovered: recovered}
		}
	}()
	return task.Run()
}
