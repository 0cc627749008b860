package metrics

import "time"

// RecordStoreQuery records the duration and outcome of a record store call.
func RecordStoreQuery(backend, operation string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	result := "success"
	if err != nil {
		result = "failure"
	}
	StoreQueriesTotal.WithLabelValues(backend, operation, result).Inc()
}

// RecordRowsReturned records the size of a search result, look-ahead row included.
func RecordRowsReturned(backend string, n int) {
	StoreRowsReturned.WithLabelValues(backend).Observe(float64(n))
}

// RecordGameRecorded records the outcome of a RecordGame call.
// result should be one of: "created", "duplicate", "invalid", "failure".
func RecordGameRecorded(result string) {
	GamesRecordedTotal.WithLabelValues(result).Inc()
}
