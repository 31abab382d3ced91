package lib

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreOpDuration records document store latency by collection and operation.
var StoreOpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "devconnect_store_op_seconds",
	Help:    "Document store operation latency in seconds",
	Buckets: prometheus.DefBuckets,
}, []string{"collection", "operation"})

// TrackStoreOp returns a function that observes the elapsed time when called (use with defer).
func TrackStoreOp(collection, operation string) func() {
	start := time.Now()
	return func() {
		StoreOpDuration.WithLabelValues(collection, operation).Observe(time.Since(start).Seconds())
	}
}
