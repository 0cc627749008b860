// Package config holds small helpers for reading settings from the environment.
//
// Every getter treats an unset or empty variable as "use the default". A set
// but unparsable value also falls back to the default and logs a warning, so
// a typo never stops the process; internal/config validates the final values.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookup reads key and parses it, falling back to defaultValue.
func lookup[T any](key string, defaultValue T, kind string, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		slog.Warn("invalid "+kind+" value for environment variable, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Any("default", defaultValue),
			slog.String("error", err.Error()))
		return defaultValue
	}
	return value
}

// GetEnvString returns the value of key or defaultValue when unset.
//
//	addr := GetEnvString("HTTP_ADDR", ":8080")
func GetEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns key parsed as a base-10 integer.
//
//	burst := GetEnvInt("RATELIMIT_BURST", 40)
func GetEnvInt(key string, defaultValue int) int {
	return lookup(key, defaultValue, "integer", strconv.Atoi)
}

// GetEnvFloat returns key parsed as a float64.
//
//	rps := GetEnvFloat("RATELIMIT_RPS", 20)
func GetEnvFloat(key string, defaultValue float64) float64 {
	return lookup(key, defaultValue, "float", func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// GetEnvBool returns key parsed by strconv.ParseBool
// ("1", "t", "true", "0", "f", "false" in any common casing).
//
//	enabled := GetEnvBool("RATELIMIT_ENABLED", true)
func GetEnvBool(key string, defaultValue bool) bool {
	return lookup(key, defaultValue, "boolean", strconv.ParseBool)
}

// GetEnvDuration returns key parsed by time.ParseDuration ("500ms", "30s", "1h30m").
//
//	timeout := GetEnvDuration("STORE_QUERY_TIMEOUT", 5*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return lookup(key, defaultValue, "duration", time.ParseDuration)
}

// GetEnvStringList returns key split on commas with blanks trimmed and
// empty items dropped. A value with no items yields defaultValue.
//
//	// ELASTICSEARCH_ADDRESSES="http://es1:9200, http://es2:9200"
//	addrs := GetEnvStringList("ELASTICSEARCH_ADDRESSES", []string{"http://localhost:9200"})
func GetEnvStringList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var result []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
