// Package metrics records fetch observations with Prometheus.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	fetchTotal    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec

	// Registration guard
	metricsOnce       sync.Once
	metricsRegistered bool
)

// FetchMetrics provides methods to record context fetch metrics.
type FetchMetrics struct{}

// NewFetchMetrics creates a new FetchMetrics instance. Recording is a no-op
// until Init has been called.
func NewFetchMetrics() *FetchMetrics {
	return &FetchMetrics{}
}

// Init registers all Prometheus metrics. Call once at startup when metrics
// are enabled.
func Init() {
	metricsOnce.Do(func() {
		fetchTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "secretsource_fetch_total",
				Help: "Total number of context fetch attempts",
			},
			[]string{"store", "outcome"},
		)

		fetchDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "secretsource_fetch_duration_seconds",
				Help:    "Duration of context fetch operations in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"store"},
		)

		metricsRegistered = true
	})
}

// RecordFetch records one fetch attempt and its duration.
func (m *FetchMetrics) RecordFetch(store, outcome string, seconds float64) {
	if !metricsRegistered || fetchTotal == nil {
		return
	}
	fetchTotal.WithLabelValues(store, outcome).Inc()
	fetchDuration.WithLabelValues(store).Observe(seconds)
}
