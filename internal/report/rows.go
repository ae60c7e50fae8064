package report

import (
	"fmt"
	"strconv"

	"github.com/Tiliavir/toggl-audit/internal/model"
	"github.com/Tiliavir/toggl-audit/internal/rules"
	"github.com/Tiliavir/toggl-audit/internal/timecalc"
)

const (
	reasonInvalidName = "Invalid name (must be a 3-digit code or contain keyword)"
	reasonUnusualSlot = "Logged during unusual time slot"
)

// NameIssues returns one row per entry whose description fails the naming policy.
func NameIssues(entries []model.TimeEntry, project string) []Entry {
	var out []Entry
	for _, e := range entries {
		if rules.IsNameInvalid(e.Description) {
			out = append(out, Entry{ID: e.ID, Description: e.Description, Project: project, Reason: reasonInvalidName})
		}
	}
	return out
}

// ConflictRows flattens conflicts into rows. Each overlapping pair is listed
// once, on the row of the entry with the lower id.
func ConflictRows(conflicts []rules.Conflict, project string) []Entry {
	var out []Entry
	for _, c := range conflicts {
		for _, other := range c.ConflictsWith {
			if c.Entry.ID >= other.ID {
				continue
			}
			out = append(out, Entry{
				ID:          c.Entry.ID,
				Description: c.Entry.Description,
				Project:     project,
				Reason:      fmt.Sprintf("Time overlap with [%d] %s", other.ID, other.Description),
			})
		}
	}
	return out
}

// OverHours returns the single summary row when entries exceed
// thresholdSeconds, and nil otherwise.
func OverHours(entries []model.TimeEntry, thresholdSeconds int64, project string) []Entry {
	if !rules.IsOverHours(entries, thresholdSeconds) {
		return nil
	}
	total := timecalc.FormatHoursMinutes(rules.TotalSeconds(entries))
	hours := float64(thresholdSeconds) / 3600
	limit := strconv.FormatFloat(hours, 'f', -1, 64) + " hrs"
	if hours == 1 {
		limit = "1 hr"
	}
	return []Entry{{
		ID:      0,
		Project: project,
		Reason:  fmt.Sprintf("You logged %s, which exceeds %s today.", total, limit),
	}}
}

// UnusualSlots returns one row per entry flagged by rules.FindUnusualSlots.
func UnusualSlots(flagged []model.TimeEntry, project string) []Entry {
	var out []Entry
	for _, e := range flagged {
		out = append(out, Entry{ID: e.ID, Description: e.Description, Project: project, Reason: reasonUnusualSlot})
	}
	return out
}
