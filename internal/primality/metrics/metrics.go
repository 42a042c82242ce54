package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"primelab/internal/primality/models"
)

// Metrics holds the Prometheus instruments for the primality engine. A nil
// *Metrics is valid and records nothing, so tests can run without touching
// the default registry.
type Metrics struct {
	RunsTotal      *prometheus.CounterVec
	RunDuration    *prometheus.HistogramVec
	ComparisonsRun prometheus.Counter
	DegradedTotal  prometheus.Counter
}

// New creates and registers all engine metrics.
func New() *Metrics {
	return &Metrics{
		RunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "primelab_runs_total",
			Help: "Total primality test runs by algorithm and verdict",
		}, []string{"algorithm", "verdict"}),
		RunDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "primelab_run_duration_seconds",
			Help:    "Wall-clock duration of one algorithm run",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, []string{"algorithm"}),
		ComparisonsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "primelab_comparisons_total",
			Help: "Total run-all comparison invocations",
		}),
		DegradedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "primelab_degraded_results_total",
			Help: "Results degraded by algorithm failure or inapplicability",
		}),
	}
}

// ObserveRun records one completed algorithm run.
func (m *Metrics) ObserveRun(id models.AlgorithmID, verdict models.Verdict, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(string(id), string(verdict)).Inc()
	m.RunDuration.WithLabelValues(string(id)).Observe(elapsed.Seconds())
}

// ObserveComparison records one run-all invocation.
func (m *Metrics) ObserveComparison() {
	if m == nil {
		return
	}
	m.ComparisonsRun.Inc()
}

// ObserveDegraded records a degraded result entry.
func (m *Metrics) ObserveDegraded() {
	if m == nil {
		return
	}
	m.DegradedTotal.Inc()
}
