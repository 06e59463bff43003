// Package metrics holds the Prometheus collectors for the meeting pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for one process.
type Metrics struct {
	StageSeconds   *prometheus.HistogramVec
	StageFailures  *prometheus.CounterVec
	CacheLookups   *prometheus.CounterVec
	ModelCalls     *prometheus.CounterVec
	Deliveries     *prometheus.CounterVec
	ActiveSessions prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		StageSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "digest_stage_seconds",
				Help:    "Pipeline stage latency",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 300, 900},
			},
			[]string{"stage"},
		),
		StageFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digest_stage_failures_total",
				Help: "Pipeline stage failures by error kind",
			},
			[]string{"stage", "kind"},
		),
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digest_cache_lookups_total",
				Help: "Result cache lookups",
			},
			[]string{"cache", "result"},
		),
		ModelCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digest_model_calls_total",
				Help: "Language model calls by task and status",
			},
			[]string{"task", "status"},
		),
		Deliveries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "digest_deliveries_total",
				Help: "Summary email submissions by status",
			},
			[]string{"status"},
		),
		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "digest_active_sessions",
				Help: "Sessions currently processing",
			},
		),
	}
}

// NewNop returns collectors registered on a private registry.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveStage records a stage duration and, on failure, its error kind.
func (m *Metrics) ObserveStage(stage string, d time.Duration, failureKind string) {
	if m == nil {
		return
	}
	m.StageSeconds.WithLabelValues(stage).Observe(d.Seconds())
	if failureKind != "" {
		m.StageFailures.WithLabelValues(stage, failureKind).Inc()
	}
}

// CacheLookup counts a cache hit or miss.
func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(cache, result).Inc()
}

// ModelCall counts one language-model invocation.
func (m *Metrics) ModelCall(task string, err error) {
	if m == nil {
		return
	}
	m.ModelCalls.WithLabelValues(task, status(err)).Inc()
}

// Delivery counts one transport submission.
func (m *Metrics) Delivery(err error) {
	if m == nil {
		return
	}
	m.Deliveries.WithLabelValues(status(err)).Inc()
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
