package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "")
	assert.Equal(t, "fallback", GetEnvString("TEST_STRING", "fallback"))

	t.Setenv("TEST_STRING", "value")
	assert.Equal(t, "value", GetEnvString("TEST_STRING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 7},
		{"valid", "42", 42},
		{"surrounding spaces", " 42 ", 42},
		{"negative", "-3", -3},
		{"not a number", "many", 7},
		{"float", "1.5", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("TEST_INT", 7))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "0.25")
	assert.InDelta(t, 0.25, GetEnvFloat("TEST_FLOAT", 1), 1e-9)

	t.Setenv("TEST_FLOAT", "half")
	assert.InDelta(t, 1.0, GetEnvFloat("TEST_FLOAT", 1), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"", true, true},
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{"f", true, false},
		{"False", true, false},
		{"yes", false, false},
		{"yes", true, true},
	}
	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.value)
		assert.Equal(t, tt.want, GetEnvBool("TEST_BOOL", tt.def), "value %q default %v", tt.value, tt.def)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "90")
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION", time.Second))
}

func TestGetEnvStringList(t *testing.T) {
	def := []string{"default"}

	t.Setenv("TEST_LIST", "")
	assert.Equal(t, def, GetEnvStringList("TEST_LIST", def))

	t.Setenv("TEST_LIST", " a, b ,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, GetEnvStringList("TEST_LIST", def))

	t.Setenv("TEST_LIST", " , ,")
	assert.Equal(t, def, GetEnvStringList("TEST_LIST", def))
}
