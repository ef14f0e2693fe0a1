package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts the total number of pagination requests.
	// Labels: status (HTTP status code), strategy (cursor, offset)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_pagination_requests_total",
			Help: "Total number of pagination requests",
		},
		[]string{"status", "strategy"},
	)

	// DurationSeconds tracks request duration distribution.
	// Labels: operation (handler, service, repository)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_pagination_duration_seconds",
			Help:    "Request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// ResultCount tracks the number of results returned per page.
	// Labels: strategy (cursor, offset)
	ResultCount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_pagination_result_count",
			Help:    "Number of results returned per page",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
		[]string{"strategy"},
	)

	// ErrorsTotal counts pagination errors by type.
	// Labels: type (validation, database, cache)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a pagination request metric.
func RecordRequest(statusCode int, strategy string) {
	RequestsTotal.WithLabelValues(fmt.Sprintf("%d", statusCode), strategy).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordResultCount records the number of results returned for a page.
func RecordResultCount(strategy string, count int) {
	ResultCount.WithLabelValues(strategy).Observe(float64(count))
}

// RecordError records an error metric.
// errorType should be one of: "validation", "database", "cache"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}
