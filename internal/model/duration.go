package model

import (
	"fmt"
	"time"
)

// FormatDuration renders the elapsed time between dock-in and dock-out as
// "{hours}h {minutes}m", or just "{minutes}m" under an hour. Minutes are
// floored. A nil end (still docked) or an end before start (clock skew)
// both render as "0m"; this function never fails.
func FormatDuration(start time.Time, end *time.Time) string {
	if end == nil {
		return "0m"
	}
	diff := end.Sub(start)
	if diff < 0 {
		return "0m"
	}
	minutes := int(diff / time.Minute)
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}
