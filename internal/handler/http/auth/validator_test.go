package auth

import (
	"strings"
	"testing"
)

func TestValidateSecret(t *testing.T) {
	tests := []struct {
		name          string
		secret        string
		wantErr       bool
		errorContains string
	}{
		{
			name:          "empty",
			secret:        "",
			wantErr:       true,
			errorContains: "must not be empty",
		},
		{
			name:          "too short",
			secret:        "0123456789abcdef",
			wantErr:       true,
			errorContains: "at least 32 bytes",
		},
		{
			name:          "repeated character",
			secret:        strings.Repeat("x", 40),
			wantErr:       true,
			errorContains: "repeated character",
		},
		{
			name:          "placeholder prefix",
			secret:        "changeme-changeme-changeme-12345",
			wantErr:       true,
			errorContains: "placeholder",
		},
		{
			name:    "long placeholder prefix is accepted",
			secret:  "secret-" + strings.Repeat("k9Xq", 10),
			wantErr: false,
		},
		{
			name:    "random 32 bytes",
			secret:  "T0p4wQ9zL1mX8cV3bN6rE2yU5iO7aS0d",
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSecret(tt.secret)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSecret() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errorContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errorContains)
			}
			if err != nil && tt.secret != "" && strings.Contains(err.Error(), tt.secret) {
				t.Errorf("error message leaks the secret")
			}
		})
	}
}
