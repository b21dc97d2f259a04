package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ReactionsTotal counts like/dislike operations by outcome.
	ReactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_reactions_total",
		Help: "Total number of article reactions by kind and outcome",
	}, []string{"kind", "outcome"})

	// RatingsSubmitted records the distribution of submitted rating scores.
	RatingsSubmitted = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "inkwell_ratings_submitted",
		Help:    "Distribution of submitted article rating scores",
		Buckets: []float64{1, 2, 3, 4, 5},
	})

	// ProfileTransitions counts profile activation state transitions.
	ProfileTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_profile_transitions_total",
		Help: "Total number of profile activation state transitions",
	}, []string{"transition"})
)

// TrackQuery returns a function that records query latency when called
// (typically deferred).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
