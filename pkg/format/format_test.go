package format

import (
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	ts := time.Date(2026, time.January, 1, 15, 4, 5, 0, time.UTC)

	if got := Date(ts); got != "2026-01-01" {
		t.Errorf("Expected '2026-01-01', got %q", got)
	}
	if got := Date(time.Time{}); got != Placeholder {
		t.Errorf("Expected placeholder for zero time, got %q", got)
	}
}

func TestDateTime(t *testing.T) {
	ts := time.Date(2026, time.January, 1, 15, 4, 5, 0, time.UTC)

	if got := DateTime(ts); got != "2026-01-01 15:04" {
		t.Errorf("Expected '2026-01-01 15:04', got %q", got)
	}
	if got := DateTime(time.Time{}); got != Placeholder {
		t.Errorf("Expected placeholder for zero time, got %q", got)
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		input int64
		want  string
	}{
		{input: 0, want: "0"},
		{input: 999, want: "999"},
		{input: 1000, want: "1,000"},
		{input: 1234567, want: "1,234,567"},
		{input: -1234567, want: "-1,234,567"},
	}

	for _, tt := range tests {
		if got := Number(tt.input); got != tt.want {
			t.Errorf("Number(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBytes(t *testing.T) {
	tests := []struct {
		input uint64
		want  string
	}{
		{input: 0, want: "0 B"},
		{input: 1023, want: "1023 B"},
		{input: 1024, want: "1.0 KiB"},
		{input: 1536, want: "1.5 KiB"},
		{input: 1048576, want: "1.0 MiB"},
	}

	for _, tt := range tests {
		if got := Bytes(tt.input); got != tt.want {
			t.Errorf("Bytes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRelativeTime(t *testing.T) {
	if got := RelativeTime(time.Time{}); got != Placeholder {
		t.Errorf("Expected placeholder for zero time, got %q", got)
	}

	if got := RelativeTime(time.Now().Add(-3 * time.Minute)); got != "3 minutes ago" {
		t.Errorf("Expected '3 minutes ago', got %q", got)
	}
}
