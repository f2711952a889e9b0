package scheduler

// Middleware wraps the task of the entry h refers to.
// It is applied once, at submission.
type Middleware = func(h *Handle, next Task) Task

// WithMiddleware registers middlewares applied to every submitted task.
// First registered one will be invoked first.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Scheduler) {
		for _, m := range mw {
			if m != nil {
				s.mw = append(s.mw, m)
			}
		}
	}
}

func (s *Scheduler) applyMiddleware(h *Handle, task Task) Task {
	wrapped := task
	for i := len(s.mw) - 1; i >= 0; i-- {
		wrapped = s.mw[i](h, wrapped)
	}
	return wrapped
}
