package logger

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

type metrics struct {
	events        *prometheus.CounterVec
	writeFailures prometheus.Counter
}

var (
	logMetrics     *metrics  //nolint:gochecknoglobals
	logMetricsOnce sync.Once //nolint:gochecknoglobals
)

// levelCounter is a zerolog hook counting emitted events per level.
type levelCounter struct {
	m *metrics
}

// Run implements zerolog.Hook.
func (h levelCounter) Run(_ *zerolog.Event, level zerolog.Level, _ string) {
	if level == zerolog.NoLevel || level == zerolog.Disabled {
		return
	}

	h.m.events.WithLabelValues(level.String()).Inc()
}

// newLevelCounter registers the logger metrics on the default registry the first time
// it is called. Later calls reuse them, the service label of the first call wins.
func newLevelCounter(service string) levelCounter {
	logMetricsOnce.Do(func() {
		labels := prometheus.Labels{"service": service}
		logMetrics = &metrics{
			events: promauto.NewCounterVec(prometheus.CounterOpts{
				Name:        "log_events_total",
				Help:        "Log events written, by level.",
				ConstLabels: labels,
			}, []string{"level"}),
			writeFailures: promauto.NewCounter(prometheus.CounterOpts{
				Name:        "log_write_failures_total",
				Help:        "Log events the writers failed to persist.",
				ConstLabels: labels,
			}),
		}
	})

	return levelCounter{m: logMetrics}
}
