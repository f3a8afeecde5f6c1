package logging

import "time"

// formatTimestamp renders console timestamps as local wall-clock time to the
// second. Zero times render empty so handlers can omit them.
func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Local().Format(time.DateTime)
}
