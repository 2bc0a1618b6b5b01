package console

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "gamebox"

// Metrics records dispatched requests.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	DurationSeconds *prometheus.HistogramVec
}

// NewMetrics registers the dispatcher metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "dispatch",
				Name:      "requests_total",
				Help:      "Dispatched requests by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		DurationSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "dispatch",
				Name:      "duration_seconds",
				Help:      "Time to run the action and recompute the status",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"action"},
		),
	}
}

func (m *Metrics) observe(action string, err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = KindOf(err).String()
	}
	m.RequestsTotal.WithLabelValues(action, outcome).Inc()
	m.DurationSeconds.WithLabelValues(action).Observe(d.Seconds())
}
