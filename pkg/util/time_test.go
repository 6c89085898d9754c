package util

import (
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"365d", 365 * 24 * time.Hour},
		{"30m", 30 * time.Minute},
		{"10", 10 * time.Second},
		{" 1d ", 24 * time.Hour},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if err != nil {
			t.Errorf("ParseDuration(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDuration("xxd"); err == nil {
		t.Error("ParseDuration(\"xxd\") expected error, got nil")
	}
}
