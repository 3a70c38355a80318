// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests.
	// Labels:
	//   - method: HTTP method
	//   - route: matched gin route, "unmatched" for 404s
	//   - status: response status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibecheck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibecheck_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// RateLimitedTotal counts requests rejected by the rate limiter
	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibecheck_rate_limited_total",
			Help: "Total number of requests rejected by rate limiting",
		},
		[]string{"scope"},
	)

	// SentimentRequestsTotal counts note analyses.
	// Labels:
	//   - mode: "remote" or "keyword"
	//   - outcome: "success", "error", "circuit_open"
	SentimentRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibecheck_sentiment_requests_total",
			Help: "Total number of quick note sentiment analyses",
		},
		[]string{"mode", "outcome"},
	)

	SentimentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vibecheck_sentiment_duration_seconds",
			Help:    "Latency of remote sentiment inference",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// MoodEntriesTotal counts accepted mood submissions
	MoodEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vibecheck_mood_entries_total",
			Help: "Total number of mood entries saved",
		},
	)

	// InsightsGeneratedTotal counts insights emitted, by title
	InsightsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibecheck_insights_generated_total",
			Help: "Total number of insights produced by the insight engine",
		},
		[]string{"title"},
	)

	// AuthAttemptsTotal counts register and login attempts by outcome
	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibecheck_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"action", "outcome"},
	)
)
