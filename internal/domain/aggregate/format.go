package aggregate

import (
	"fmt"
	"strings"
)

// FormatDuration renders seconds as hours and minutes, e.g. "1h 30m", "45m"
// or "2h". Leftover seconds are dropped.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours == 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	return strings.Join(parts, " ")
}

// FormatHours renders seconds as decimal hours with two places, e.g. "1.50".
func FormatHours(seconds int64) string {
	return fmt.Sprintf("%.2f", float64(seconds)/3600)
}
