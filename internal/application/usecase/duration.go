package usecase

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// zeroPlayTime is the display string for absent, zero or negative durations.
const zeroPlayTime = "0 minutes (0.0 hours)"

// FormatPlayTime converts a play duration in milliseconds to the fixed
// "minutes (hours)" display string, e.g. "1,234 minutes (20.6 hours)".
// NaN and negative inputs render as the zero-duration string.
func FormatPlayTime(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		return zeroPlayTime
	}
	totalSeconds := int64(ms / 1000)
	totalMinutes := totalSeconds / 60
	totalHours := float64(totalMinutes) / 60
	return fmt.Sprintf("%s minutes (%.1f hours)", humanize.Comma(totalMinutes), totalHours)
}
