package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ngicks/fixedtimer/config"
	"github.com/ngicks/fixedtimer/scheduler"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "path to yaml config. default config is used if empty.")
	scenario   = flag.String("scenario", "all", "one of: now, later, slow, rate-past, delay-past, failure, all")
	runFor     = flag.Duration("for", 5*time.Second, "how long each scenario runs")
)

func main() {
	flag.Parse()
	if err := _main(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printAt(label string) scheduler.TaskFunc {
	return func() error {
		fmt.Printf("%s at %s\n", label, time.Now().Format("15:04:05.000"))
		return nil
	}
}

func slowPrintAt(label string, d time.Duration) scheduler.TaskFunc {
	return func() error {
		fmt.Printf("%s at %s\n", label, time.Now().Format("15:04:05.000"))
		time.Sleep(d)
		return nil
	}
}

type scenarioFn = func(s *scheduler.Scheduler, now time.Time) error

var scenarios = []struct {
	name string
	fn   scenarioFn
}{
	{"now", func(s *scheduler.Scheduler, now time.Time) error {
		_, err := s.ScheduleFixedDelay(printAt("repeat from now on"), now, time.Second)
		return err
	}},
	{"later", func(s *scheduler.Scheduler, now time.Time) error {
		_, err := s.ScheduleFixedDelay(printAt("repeat from a second later"), now.Add(time.Second), time.Second)
		return err
	}},
	{"slow", func(s *scheduler.Scheduler, now time.Time) error {
		// each run takes longer than the period, so every task starts about 3s apart.
		for i := 1; i <= 3; i++ {
			if _, err := s.ScheduleFixedDelay(slowPrintAt(fmt.Sprintf("slow task %d", i), time.Second), now, 500*time.Millisecond); err != nil {
				return err
			}
		}
		return nil
	}},
	{"rate-past", func(s *scheduler.Scheduler, now time.Time) error {
		// three runs at once, then every second.
		_, err := s.ScheduleFixedRate(printAt("fixed rate from 2s ago"), now.Add(-2*time.Second), time.Second)
		return err
	}},
	{"delay-past", func(s *scheduler.Scheduler, now time.Time) error {
		// one run at once, then every second.
		_, err := s.ScheduleFixedDelay(printAt("fixed delay from 2s ago"), now.Add(-2*time.Second), time.Second)
		return err
	}},
	{"failure", func(s *scheduler.Scheduler, now time.Time) error {
		count := 0
		if _, err := s.ScheduleFixedRate(scheduler.TaskFunc(func() error {
			count++
			if count%2 == 0 {
				panic("even run")
			}
			return errors.New("odd run")
		}), now, time.Second); err != nil {
			return err
		}
		_, err := s.ScheduleFixedRate(printAt("still alive"), now.Add(500*time.Millisecond), time.Second)
		return err
	}},
}

func _main() error {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return err
		}
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	reg := prometheus.NewRegistry()
	for _, sc := range scenarios {
		if *scenario != "all" && *scenario != sc.name {
			continue
		}
		if err := runScenario(ctx, cfg, logger.With(zap.String("scenario", sc.name)), prometheus.WrapRegistererWith(prometheus.Labels{"scenario": sc.name}, reg), sc.fn); err != nil {
			return fmt.Errorf("scenario %s: %w", sc.name, err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
	return nil
}

func runScenario(ctx context.Context, cfg config.Config, logger *zap.Logger, reg prometheus.Registerer, fn scenarioFn) error {
	opts, err := cfg.Options(logger, reg)
	if err != nil {
		return err
	}
	s := scheduler.New(opts...)

	if err := fn(s, time.Now()); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, *runFor)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Run(context.Background())
	}()

	<-ctx.Done()
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		return err
	}
	return <-errCh
}
