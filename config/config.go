package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	logmw "github.com/ngicks/fixedtimer/middleware/log"
	"github.com/ngicks/fixedtimer/observe"
	"github.com/ngicks/fixedtimer/scheduler"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

type Config struct {
	// MaxCatchUp caps fixed-rate replay of ticks elapsed before submission. 0 means unbounded.
	MaxCatchUp int           `yaml:"max_catch_up"`
	Log        LogConfig     `yaml:"log"`
	Metrics    MetricsConfig `yaml:"metrics"`
}

type LogConfig struct {
	// Level is one of debug, info, warn and error. Empty means info.
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	// Tasks logs before and after every task run.
	Tasks       bool   `yaml:"tasks"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

func Default() Config {
	return Config{
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Namespace: "fixedtimer",
		},
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse parses b on top of Default and validates the result.
// Unknown fields are rejected.
func Parse(b []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxCatchUp < 0 {
		return fmt.Errorf("%w: max_catch_up must be >= 0, but is %d", ErrInvalidConfig, c.MaxCatchUp)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Namespace) == "" {
		return fmt.Errorf("%w: metrics.namespace must not be empty when metrics are enabled", ErrInvalidConfig)
	}
	return nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, s)
}

// Logger builds a zap logger as configured.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}

	var zapConfig zap.Config
	if c.Log.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = zap.NewAtomicLevelAt(level)
	return zapConfig.Build()
}

// Options converts c into scheduler options.
// Collectors are registered into reg if metrics are enabled; reg may be nil otherwise.
// extra is appended after the configured options, so it wins on conflict.
func (c Config) Options(logger *zap.Logger, reg prometheus.Registerer, extra ...scheduler.Option) ([]scheduler.Option, error) {
	opts := []scheduler.Option{
		scheduler.WithMaxCatchUp(c.MaxCatchUp),
	}
	if logger != nil {
		opts = append(opts, scheduler.WithLogger(logger))
		if c.Log.Tasks {
			opts = append(opts, scheduler.WithMiddleware(logmw.New(logger.Named("task"))))
		}
	}

	if c.Metrics.Enabled {
		if reg == nil {
			return nil, fmt.Errorf("%w: metrics enabled but registerer is nil", ErrInvalidConfig)
		}
		metrics, err := observe.NewMetrics(reg, c.Metrics.Namespace)
		if err != nil {
			return nil, fmt.Errorf("register metrics: %w", err)
		}
		opts = append(opts, scheduler.WithHooks(metrics))
	}

	return append(opts, extra...), nil
}
