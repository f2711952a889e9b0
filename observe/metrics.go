package observe

import (
	"time"

	"github.com/ngicks/fixedtimer/scheduler"
	"github.com/prometheus/client_golang/prometheus"
)

var _ scheduler.Hooks = (*Metrics)(nil)

const (
	resultOk        = "ok"
	resultError     = "error"
	resultRecovered = "panic"
)

// Metrics exports start delay, execution time and outcome of every run to Prometheus.
//
// All series are labelled by mode only; per-entry values are available from scheduler.Handle.
type Metrics struct {
	startDelay    *prometheus.HistogramVec
	lastDelay     *prometheus.GaugeVec
	executionTime *prometheus.HistogramVec
	executions    *prometheus.CounterVec
}

// NewMetrics creates and registers collectors into reg.
// An error is returned if any of them is already registered.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		startDelay: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "start_delay_seconds",
				Help:      "Actual start time minus nominal fire time.",
				Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"mode"},
		),
		lastDelay: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_start_delay_seconds",
				Help:      "Start delay of the most recent run.",
			},
			[]string{"mode"},
		),
		executionTime: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "execution_seconds",
				Help:      "Time a task took to return.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "executions_total",
				Help:      "Number of task runs by outcome.",
			},
			[]string{"mode", "result"},
		),
	}

	for _, c := range []prometheus.Collector{m.startDelay, m.lastDelay, m.executionTime, m.executions} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func modeLabel(h *scheduler.Handle) string {
	if h.Period() == 0 {
		return "once"
	}
	return h.Mode().String()
}

func (m *Metrics) OnTaskStart(h *scheduler.Handle, delay time.Duration) {
	mode := modeLabel(h)
	m.startDelay.WithLabelValues(mode).Observe(delay.Seconds())
	m.lastDelay.WithLabelValues(mode).Set(delay.Seconds())
}

func (m *Metrics) OnTaskDone(h *scheduler.Handle, elapsed time.Duration, err error) {
	mode := modeLabel(h)
	m.executionTime.WithLabelValues(mode).Observe(elapsed.Seconds())
	m.executions.WithLabelValues(mode, result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return resultOk
	case scheduler.IsRecovered(err):
		return resultRecovered
	default:
		return resultError
	}
}
