package localstore

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "appkit_localstore_operations_total",
			Help: "Total local store operation outcomes.",
		},
		[]string{"operation", "status"},
	)
	operationLatencySeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "appkit_localstore_operation_latency_seconds",
			Help:    "Local store operation latency in seconds.",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"operation"},
	)
)

func observeOperation(operation, status string, d time.Duration) {
	operationsTotal.WithLabelValues(operation, status).Inc()
	operationLatencySeconds.WithLabelValues(operation).Observe(d.Seconds())
}
