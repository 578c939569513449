package router

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for route finding.
type Metrics struct {
	RoutesEvaluated  prometheus.Counter
	QuoteFailures    prometheus.Counter
	BestRouteLatency prometheus.Histogram
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// NewMetrics creates and registers the router metrics (singleton pattern).
func NewMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			RoutesEvaluated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "crest",
					Subsystem: "router",
					Name:      "routes_evaluated_total",
					Help:      "Total candidate routes priced during searches",
				},
			),
			QuoteFailures: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "crest",
					Subsystem: "router",
					Name:      "quote_failures_total",
					Help:      "Total hop quotes rejected while pricing routes",
				},
			),
			BestRouteLatency: promauto.NewHistogram(
				prometheus.HistogramOpts{
					Namespace: "crest",
					Subsystem: "router",
					Name:      "best_route_seconds",
					Help:      "Best-route search latency in seconds",
					Buckets:   prometheus.DefBuckets,
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
