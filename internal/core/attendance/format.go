package attendance

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as hh:mm:ss. Hours do not wrap at 24.
func FormatDuration(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}
	total := int64(duration / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
