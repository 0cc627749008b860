package pagination

import (
	"fmt"
	"math"
)

// MaxCount is the largest page size accepted when no MaxLimit is configured.
// Queries fetch count+1 rows, so it leaves room for the look-ahead row.
const MaxCount = math.MaxInt - 1

// ValidateCount checks a page size against the configured maximum.
// A MaxLimit of zero or less leaves only the MaxCount bound.
func ValidateCount(count int, config Config) error {
	if count < 1 {
		return fmt.Errorf("%w: must be a positive integer, got %d", ErrInvalidCount, count)
	}
	if count > MaxCount {
		return fmt.Errorf("%w: must not exceed %d, got %d", ErrInvalidCount, MaxCount, count)
	}
	if config.MaxLimit > 0 && count > config.MaxLimit {
		return fmt.Errorf("%w: must not exceed %d, got %d", ErrInvalidCount, config.MaxLimit, count)
	}
	return nil
}

// WithDefaults applies default values from config to Params.
//
// Rules:
//   - If limit <= 0, set to config.DefaultLimit
//   - If limit > config.MaxLimit, cap to config.MaxLimit
func (p Params) WithDefaults(config Config) Params {
	if p.Limit <= 0 {
		p.Limit = config.DefaultLimit
	}
	if config.MaxLimit > 0 && p.Limit > config.MaxLimit {
		p.Limit = config.MaxLimit
	}
	return p
}
