package log

import (
	"github.com/ngicks/fixedtimer/common"
	"github.com/ngicks/fixedtimer/scheduler"
	"go.uber.org/zap"
)

type options struct {
	level  zap.AtomicLevel
	fields []zap.Field
	clock  common.Clock
}

type Option func(o *options)

// WithLevel sets the level of before/after logs. Failures are always logged at error level.
func WithLevel(level zap.AtomicLevel) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithClock sets the clock elapsed time is measured with.
// Pass the clock the scheduler runs on. Default is common.RealClock.
func WithClock(clock common.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithFields adds fields to every log line.
func WithFields(fields ...zap.Field) Option {
	return func(o *options) {
		o.fields = append(o.fields, fields...)
	}
}

// New returns a middleware logging before and after every run.
func New(logger *zap.Logger, opts ...Option) scheduler.Middleware {
	o := options{
		level: zap.NewAtomicLevelAt(zap.InfoLevel),
		clock: common.NewRealClock(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(h *scheduler.Handle, next scheduler.Task) scheduler.Task {
		logger := logger.With(
			append(
				[]zap.Field{
					zap.Stringer("task_id", h.Id()),
					zap.Stringer("mode", h.Mode()),
					zap.Duration("period", h.Period()),
				},
				o.fields...,
			)...,
		)
		return scheduler.TaskFunc(func() error {
			level := o.level.Level()
			logger.Log(level, "run", zap.String("timing", "before_work"), zap.Int("run", h.Runs()))

			start := o.clock.Now()
			err := next.Run()
			fields := []zap.Field{zap.String("timing", "after_work"), zap.Duration("elapsed", o.clock.Now().Sub(start))}
			if err != nil {
				logger.Error("run", append(fields, zap.Error(err))...)
			} else {
				logger.Log(level, "run", fields...)
			}
			return err
		})
	}
}
