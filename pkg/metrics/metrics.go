package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StoreMetrics counts dispatched actions by kind and outcome and tracks
// how long a committed dispatch takes (reducers plus listener fan-out).
type StoreMetrics struct {
	Actions *prometheus.CounterVec
	Latency *prometheus.HistogramVec
}

func NewStoreMetrics(service string) *StoreMetrics {
	actions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "shopfront",
		Subsystem: service,
		Name:      "actions_total",
		Help:      "Total number of dispatched actions.",
	}, []string{"kind", "result"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "shopfront",
		Subsystem: service,
		Name:      "dispatch_duration_seconds",
		Help:      "Time spent committing a dispatch.",
		Buckets:   []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
	}, []string{"kind"})

	prometheus.MustRegister(actions, latency)
	return &StoreMetrics{Actions: actions, Latency: latency}
}

// Record is nil-safe so the store can run without metrics wired.
func (m *StoreMetrics) Record(kind, result string, took time.Duration) {
	if m == nil {
		return
	}
	m.Actions.WithLabelValues(kind, result).Inc()
	if result == "applied" {
		m.Latency.WithLabelValues(kind).Observe(took.Seconds())
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
