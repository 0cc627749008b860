package auth

import (
	"testing"
	"time"
)

func TestIssueToken_RoundTrip(t *testing.T) {
	secret := []byte(testSecret)

	signed, err := IssueToken(secret, "game-server-1", RoleRecorder, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, err := validateJWT("Bearer "+signed, secret)
	if err != nil {
		t.Fatalf("validateJWT() error = %v", err)
	}
	if claims.Subject != "game-server-1" {
		t.Errorf("subject = %q, want game-server-1", claims.Subject)
	}
	if claims.Role != RoleRecorder {
		t.Errorf("role = %q, want %q", claims.Role, RoleRecorder)
	}
}

func TestIssueToken_Invalid(t *testing.T) {
	secret := []byte(testSecret)

	if _, err := IssueToken(secret, "svc", "admin", time.Hour); err == nil {
		t.Error("expected error for unknown role")
	}
	if _, err := IssueToken(secret, "svc", RoleReader, 0); err == nil {
		t.Error("expected error for non-positive ttl")
	}
}

func TestValidateJWT_WrongSecret(t *testing.T) {
	signed, err := IssueToken([]byte(testSecret), "svc", RoleRecorder, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	if _, err := validateJWT("Bearer "+signed, []byte("another-secret-that-is-long-enough-00")); err != errInvalidToken {
		t.Errorf("validateJWT() error = %v, want %v", err, errInvalidToken)
	}
}
