package utils

import (
	"strings"
	"time"
)

const (
	layoutDate = "2006-01-02"
	layoutTime = "15:04"
)

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// ParseDate parses YYYY-MM-DD in local timezone.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(layoutDate, strings.TrimSpace(s), time.Local)
}

// FormatDate formats time to YYYY-MM-DD in local timezone.
func FormatDate(t time.Time) string {
	return t.In(time.Local).Format(layoutDate)
}

// FormatClock formats time-of-day as HH:MM.
func FormatClock(t time.Time) string {
	return t.In(time.Local).Format(layoutTime)
}

// AddClock adds a duration to an HH:MM clock string, wrapping past
// midnight (arrival times on long trips do wrap).
func AddClock(clock string, d time.Duration) string {
	t, err := time.Parse(layoutTime, strings.TrimSpace(clock))
	if err != nil {
		return clock
	}
	return t.Add(d).Format(layoutTime)
}
