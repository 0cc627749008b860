// Package pagination implements stateless, bidirectional cursor pagination over
// time-ordered result sets. All resumption state travels inside an opaque cursor
// token held by the client, so no server-side session is needed between pages.
package pagination

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds pagination configuration settings.
// These values can be loaded from environment variables or config files.
type Config struct {
	DefaultLimit int `yaml:"default_limit"` // Default items per page (typically 20)
	MaxLimit     int `yaml:"max_limit"`     // Maximum allowed items per page (typically 100)
}

// DefaultConfig returns the default pagination configuration.
// Default values: limit=20, max=100
func DefaultConfig() Config {
	return Config{
		DefaultLimit: 20,
		MaxLimit:     100,
	}
}

// WithEnv overlays environment variables on c.
// Supported environment variables:
//   - PAGINATION_DEFAULT_LIMIT: Default items per page
//   - PAGINATION_MAX_LIMIT: Maximum items per page
//
// Unset or unparsable variables keep the current value.
func (c Config) WithEnv() Config {
	return Config{
		DefaultLimit: getEnvAsInt("PAGINATION_DEFAULT_LIMIT", c.DefaultLimit),
		MaxLimit:     getEnvAsInt("PAGINATION_MAX_LIMIT", c.MaxLimit),
	}
}

// Validate checks that the limits are usable.
func (c Config) Validate() error {
	if c.MaxLimit < 1 {
		return fmt.Errorf("pagination max_limit must be positive, got %d", c.MaxLimit)
	}
	if c.DefaultLimit < 1 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("pagination default_limit must be between 1 and %d, got %d", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}

// getEnvAsInt retrieves an environment variable and parses it as an integer.
// Returns the default value if the variable is not set or cannot be parsed.
func getEnvAsInt(key string, defaultValue int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
