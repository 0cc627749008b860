package pagination

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts the total number of pagination requests.
	// Labels: status (HTTP status code), direction (first, next, previous)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_history_pagination_requests_total",
			Help: "Total number of game history pagination requests",
		},
		[]string{"status", "direction"},
	)

	// DurationSeconds tracks request duration distribution.
	// Labels: operation (handler, service, repository)
	DurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "game_history_pagination_duration_seconds",
			Help:    "Request duration distribution",
			Buckets: []float64{0.01, 0.05, 0.1, 0.2, 0.5, 1.0, 2.0},
		},
		[]string{"operation"},
	)

	// PageSize tracks how many records are returned per page.
	PageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "game_history_page_size",
			Help:    "Number of records returned per page",
			Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
		},
	)

	// ErrorsTotal counts pagination errors by type.
	// Labels: type (cursor, validation, store)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_history_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// DirectionFirst labels requests for the first page, which carry no cursor.
const DirectionFirst = "first"

// RecordRequest records a pagination request metric.
func RecordRequest(statusCode int, direction string) {
	RequestsTotal.WithLabelValues(strconv.Itoa(statusCode), direction).Inc()
}

// RecordDuration records operation duration in seconds.
func RecordDuration(operation string, duration float64) {
	DurationSeconds.WithLabelValues(operation).Observe(duration)
}

// RecordPageSize records the number of items in a returned page.
func RecordPageSize(n int) {
	PageSize.Observe(float64(n))
}

// RecordError records an error metric.
// errorType should be one of: "cursor", "validation", "store"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}
