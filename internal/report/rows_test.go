package report_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/toggl-audit/internal/model"
	"github.com/Tiliavir/toggl-audit/internal/report"
	"github.com/Tiliavir/toggl-audit/internal/rules"
)

func entry(id int64, desc string, h, m, minutes int) model.TimeEntry {
	return model.TimeEntry{
		ID:          id,
		Description: desc,
		Start:       time.Date(2025, 7, 6, h, m, 0, 0, time.UTC),
		Duration:    int64(minutes * 60),
	}
}

func TestNameIssues(t *testing.T) {
	entries := []model.TimeEntry{entry(1, "123", 9, 0, 10), entry(2, "meeting", 10, 0, 10)}

	got := report.NameIssues(entries, "ThinkGIS")

	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, "meeting", got[0].Description)
	assert.Equal(t, "ThinkGIS", got[0].Project)
	assert.Contains(t, got[0].Reason, "Invalid name")
}

func TestConflictRowsOncePerPair(t *testing.T) {
	a := entry(20, "alpha", 10, 0, 30)
	b := entry(10, "beta", 10, 15, 30)
	c := entry(30, "gamma", 10, 40, 30)

	got := report.ConflictRows(rules.FindConflicts([]model.TimeEntry{a, b, c}), "ThinkGIS")

	require.Len(t, got, 2)
	assert.Equal(t, int64(10), got[0].ID)
	assert.Equal(t, "Time overlap with [20] alpha", got[0].Reason)
	assert.Equal(t, int64(10), got[1].ID)
	assert.Equal(t, "Time overlap with [30] gamma", got[1].Reason)
}

func TestOverHours(t *testing.T) {
	under := []model.TimeEntry{entry(1, "123", 9, 0, 450)}
	assert.Nil(t, report.OverHours(under, rules.DefaultMaxDailySeconds, "ThinkGIS"))

	over := []model.TimeEntry{entry(1, "123", 9, 0, 300), entry(2, "124", 14, 0, 211)}
	got := report.OverHours(over, rules.DefaultMaxDailySeconds, "ThinkGIS")

	require.Len(t, got, 1)
	assert.Equal(t, int64(0), got[0].ID)
	assert.Empty(t, got[0].Description)
	assert.Equal(t, "You logged 8 hrs 31 mins, which exceeds 7.5 hrs today.", got[0].Reason)
}

func TestOverHoursCustomThreshold(t *testing.T) {
	got := report.OverHours([]model.TimeEntry{entry(1, "123", 9, 0, 61)}, 3600, "ThinkGIS")
	require.Len(t, got, 1)
	assert.Equal(t, "You logged 1 hr 1 min, which exceeds 1 hr today.", got[0].Reason)
}

func TestOverHoursFractionalThreshold(t *testing.T) {
	got := report.OverHours([]model.TimeEntry{entry(1, "123", 9, 0, 120)}, 5400, "ThinkGIS")
	require.Len(t, got, 1)
	assert.Equal(t, "You logged 2 hrs, which exceeds 1.5 hrs today.", got[0].Reason)
}

func TestUnusualSlots(t *testing.T) {
	got := report.UnusualSlots([]model.TimeEntry{entry(4, "reply", 19, 45, 10)}, "ThinkGIS")

	require.Len(t, got, 1)
	assert.Equal(t, report.Entry{ID: 4, Description: "reply", Project: "ThinkGIS", Reason: "Logged during unusual time slot"}, got[0])
}
