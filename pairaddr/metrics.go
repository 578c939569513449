package pairaddr

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the pair-address cache.
type Metrics struct {
	Hits   prometheus.Counter
	Misses prometheus.Counter
	Size   prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers the cache metrics (singleton pattern).
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			Hits: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "crest",
					Subsystem: "pairaddr",
					Name:      "cache_hits_total",
					Help:      "Total pair-address cache hits",
				},
			),
			Misses: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "crest",
					Subsystem: "pairaddr",
					Name:      "cache_misses_total",
					Help:      "Total pair-address cache misses",
				},
			),
			Size: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "crest",
					Subsystem: "pairaddr",
					Name:      "cache_size",
					Help:      "Number of cached pair addresses",
				},
			),
		}
	})
	return metrics
}

// GetMetrics returns the singleton metrics instance.
func GetMetrics() *Metrics {
	if metrics == nil {
		return NewMetrics()
	}
	return metrics
}
