package output

import (
	"fmt"
	"time"
)

// FormatMinutes renders whole minutes as "12m" or "2h 5m".
func FormatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// FormatDuration renders a duration with FormatMinutes granularity.
func FormatDuration(d time.Duration) string {
	m := int(d.Minutes())
	if m < 0 {
		m = 0
	}
	return FormatMinutes(m)
}

// FormatTime renders an instant for human output, "-" when unset.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 02, 2006 15:04:05")
}
