// Package metrics provides Prometheus metrics for gitissues.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	// SearchTotal counts issue searches by bucket and outcome.
	SearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gitissues",
			Name:      "search_total",
			Help:      "Total number of issue searches sent to GitHub",
		},
		[]string{"bucket", "status"},
	)

	// SearchDuration measures issue search duration.
	SearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gitissues",
			Name:      "search_duration_seconds",
			Help:      "Duration of issue searches in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"bucket"},
	)

	// RejectedRequestsTotal counts inbound requests refused before any search was made.
	RejectedRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "gitissues",
			Name:      "rejected_requests_total",
			Help:      "Total number of requests rejected for an invalid repository url",
		},
	)
)

// RecordSearch records one bucket search.
func RecordSearch(bucket, status string, duration float64) {
	SearchTotal.WithLabelValues(bucket, status).Inc()
	SearchDuration.WithLabelValues(bucket).Observe(duration)
}

// RecordRejected records a request rejected for bad input.
func RecordRejected() {
	RejectedRequestsTotal.Inc()
}
