package timecalc

import (
	"fmt"
	"time"
	_ "time/tzdata" // reference timezone must resolve on hosts without zoneinfo
)

// DisplayLayout is the human-readable date used in report subjects and logs,
// e.g. "Sun Jul 06 2025".
const DisplayLayout = "Mon Jan 02 2006"

// FormatDuration formats seconds as a human-readable string like "1h 40m" or "45m" or "30s".
func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatHoursMinutes formats seconds as "H hr(s) [M min(s)]". The minutes
// clause is omitted when it is zero; seconds are truncated.
func FormatHoursMinutes(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	out := fmt.Sprintf("%d %s", h, plural(h, "hr"))
	if m != 0 {
		out += fmt.Sprintf(" %d %s", m, plural(m, "min"))
	}
	return out
}

func plural(n int64, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns 23:59:59 of the same day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// Yesterday returns the calendar day before now as seen in loc, together with
// its [00:00:00, 23:59:59] bounds expressed in UTC.
func Yesterday(now time.Time, loc *time.Location) (day, from, to time.Time) {
	local := now.In(loc)
	day = time.Date(local.Year(), local.Month(), local.Day()-1, 12, 0, 0, 0, loc)
	return day, StartOfDay(day).UTC(), EndOfDay(day).UTC()
}

// MinutesSinceMidnight returns hour*60+minute of t's wall clock in loc.
func MinutesSinceMidnight(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}
