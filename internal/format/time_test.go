package format

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	ts := time.Date(2024, 1, 23, 15, 4, 5, 0, time.UTC)
	if got := Date(ts); got != "2024-01-23" {
		t.Errorf("Date() = %q", got)
	}
}

func TestFull(t *testing.T) {
	ts := time.Date(2024, 1, 23, 15, 4, 5, 0, time.UTC)
	if got := Full(ts); got != "2024-01-23 15:04:05" {
		t.Errorf("Full() = %q", got)
	}
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{420 * time.Millisecond, "0.42s"},
		{12300 * time.Millisecond, "12.3s"},
		{128 * time.Second, "2m08s"},
	}

	for _, tt := range tests {
		if got := Elapsed(tt.in); got != tt.want {
			t.Errorf("Elapsed(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
