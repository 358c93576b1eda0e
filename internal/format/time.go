package format

import (
	"fmt"
	"time"
)

// Date formats only the date portion for display.
// Example output: "2024-01-23"
func Date(t time.Time) string {
	return t.Format("2006-01-02")
}

// DateTime formats a time with both date and time for display.
// Example output: "2024-01-23 15:04"
func DateTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}

// Full formats with full date and time with seconds.
// Example output: "2024-01-23 15:04:05"
func Full(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// Elapsed renders a duration for command summaries.
// Example output: "0.42s", "12.3s", "2m08s"
func Elapsed(d time.Duration) string {
	switch {
	case d < 10*time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}
