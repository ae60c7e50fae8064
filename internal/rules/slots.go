package rules

import (
	"time"

	"github.com/Tiliavir/toggl-audit/internal/model"
	"github.com/Tiliavir/toggl-audit/internal/timecalc"
)

// ReferenceTimezone is the zone whose wall clock defines the unusual slots.
const ReferenceTimezone = "America/Los_Angeles"

// slot is an inclusive range of minutes since local midnight.
type slot struct{ from, to int }

var unusualSlots = []slot{
	{675, 705},        // 11:15–11:45
	{975, 1005},       // 16:15–16:45
	{1170, 24*60 - 1}, // 19:30 onwards
}

// IsUnusualMinute reports whether mins (minutes since local midnight) falls in
// one of the unusual slots.
func IsUnusualMinute(mins int) bool {
	for _, s := range unusualSlots {
		if mins >= s.from && mins <= s.to {
			return true
		}
	}
	return false
}

// FindUnusualSlots returns the entries whose start, read on loc's wall clock,
// lands in an unusual slot. Order is preserved.
func FindUnusualSlots(entries []model.TimeEntry, loc *time.Location) []model.TimeEntry {
	var out []model.TimeEntry
	for _, e := range entries {
		if IsUnusualMinute(timecalc.MinutesSinceMidnight(e.Start, loc)) {
			out = append(out, e)
		}
	}
	return out
}
