package mosaic

import (
	"fmt"
	"time"
)

// TimestampLayout is the on-disk timestamp format. Fixed-width UTC so that
// string comparison of two timestamps matches chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp formats t as a fixed-width ISO 8601 string in UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp. Returns the zero time on failure.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// RelativeTime renders a persisted timestamp relative to now ("2 hours ago").
// Unparseable input is returned unchanged.
func RelativeTime(s string, now time.Time) string {
	then, err := ParseTimestamp(s)
	if err != nil {
		return s
	}

	seconds := int64(now.Sub(then).Seconds())
	if seconds < 0 {
		return "in the future"
	}
	if seconds < 60 {
		return "just now"
	}

	minutes := seconds / 60
	if minutes < 60 {
		return plural(minutes, "minute")
	}
	hours := minutes / 60
	if hours < 24 {
		return plural(hours, "hour")
	}
	days := hours / 24
	if days < 30 {
		return plural(days, "day")
	}
	months := days / 30
	if months < 12 {
		return plural(months, "month")
	}
	return plural(months/12, "year")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
