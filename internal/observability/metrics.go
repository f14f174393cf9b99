// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// MongoQueryLatency records document-store query latency by operation and collection.
	MongoQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_mongo_query_latency_seconds",
		Help:    "MongoDB query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "collection"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, collection string) func() {
	start := time.Now()
	return func() {
		MongoQueryLatency.WithLabelValues(operation, collection).Observe(time.Since(start).Seconds())
	}
}
