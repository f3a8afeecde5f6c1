package logging

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	if got := formatTimestamp(time.Time{}); got != "" {
		t.Fatalf("expected empty string for zero time, got %q", got)
	}
	ts := time.Date(2024, 3, 1, 12, 30, 45, 999, time.Local)
	if got := formatTimestamp(ts); got != "2024-03-01 12:30:45" {
		t.Fatalf("unexpected timestamp %q", got)
	}
}
