package rules

import "github.com/Tiliavir/toggl-audit/internal/model"

// DefaultMaxDailySeconds is the daily budget, 7.5 hours.
const DefaultMaxDailySeconds int64 = 27000

// TotalSeconds sums the durations of entries.
func TotalSeconds(entries []model.TimeEntry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Duration
	}
	return total
}

// IsOverHours reports whether entries add up to strictly more than
// thresholdSeconds. Callers scope entries to one project and day.
func IsOverHours(entries []model.TimeEntry, thresholdSeconds int64) bool {
	return TotalSeconds(entries) > thresholdSeconds
}
