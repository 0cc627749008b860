package auth

import (
	"fmt"
	"strings"
)

// weakSecretList contains common placeholder secrets that must be rejected.
var weakSecretList = []string{
	"secret",
	"changeme",
	"password",
	"jwt-secret",
	"your-secret-key",
	"default",
	"test",
}

const (
	// minSecretLength is the minimum HS256 key length in bytes
	minSecretLength = 32
)

// ValidateSecret checks the JWT signing secret at startup.
// It must be called before the server starts so a weak key never signs or
// verifies tokens. The error message never contains the secret.
func ValidateSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be empty")
	}
	if len(secret) < minSecretLength {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must be at least %d bytes (current length: %d)", minSecretLength, len(secret))
	}
	if isRepeatedChar(secret) {
		return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be a single repeated character")
	}

	lower := strings.ToLower(secret)
	for _, weak := range weakSecretList {
		if strings.HasPrefix(lower, weak) && len(secret) < minSecretLength+8 {
			return fmt.Errorf("jwt secret validation failed: JWT_SECRET must not be based on a placeholder value")
		}
	}
	return nil
}

// isRepeatedChar checks if s consists of a single repeated byte.
func isRepeatedChar(s string) bool {
	if len(s) == 0 {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
