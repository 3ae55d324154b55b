// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by method, route template and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_tracker_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "habit_tracker_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// LogUpsertsTotal counts habit/mood log writes that went through the natural-key upsert.
	LogUpsertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_tracker_log_upserts_total",
			Help: "Total number of habit and mood log upserts",
		},
		[]string{"kind"},
	)

	// InsightRequestsTotal counts insight requests by outcome: ok, fallback, insufficient_data.
	InsightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_tracker_insight_requests_total",
			Help: "Total number of insight requests by outcome",
		},
		[]string{"outcome"},
	)

	InsightDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "habit_tracker_insight_duration_seconds",
			Help:    "Latency of calls to the insight generator in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)
)
