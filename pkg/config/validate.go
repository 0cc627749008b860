package config

import (
	"cmp"
	"fmt"
	"time"
)

// ValidatePositiveDuration rejects zero and negative durations.
//
//	if err := ValidatePositiveDuration(timeout); err != nil {
//	    return fmt.Errorf("invalid timeout: %w", err)
//	}
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}

// ValidateNonNegativeDuration accepts zero, typically meaning "disabled".
func ValidateNonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("duration must be non-negative, got %v", d)
	}
	return nil
}

// ValidateDurationRange checks min <= d <= max.
func ValidateDurationRange(d, min, max time.Duration) error {
	return ValidateRange(d, min, max)
}

// ValidateRange checks min <= v <= max for any ordered value.
//
//	if err := ValidateRange(rate, 0.0, 1.0); err != nil {
//	    return fmt.Errorf("sampling rate: %w", err)
//	}
func ValidateRange[T cmp.Ordered](v, min, max T) error {
	if min > max {
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", min, max)
	}
	if v < min {
		return fmt.Errorf("value %v is below minimum %v", v, min)
	}
	if v > max {
		return fmt.Errorf("value %v exceeds maximum %v", v, max)
	}
	return nil
}
