package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LoadMetrics tracks configuration loads and rejected fields.
type LoadMetrics struct {
	// LoadTimestamp is the Unix time of the last successful load.
	LoadTimestamp prometheus.Gauge

	// ValidationErrorsTotal counts rejected values by field (e.g. "store.backend").
	ValidationErrorsTotal *prometheus.CounterVec
}

// Metrics is the process-wide configuration metrics set.
var Metrics = &LoadMetrics{
	LoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "game_history_config_load_timestamp",
		Help: "Unix timestamp of last configuration load",
	}),
	ValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "game_history_config_validation_errors_total",
		Help: "Total number of configuration validation errors",
	}, []string{"field"}),
}

// RecordLoadTimestamp records the current time as the configuration load timestamp.
func (m *LoadMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.SetToCurrentTime()
}

// RecordValidationError increments the validation error counter for field.
func (m *LoadMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}
