package rules

import (
	"slices"

	"github.com/Tiliavir/toggl-audit/internal/model"
)

// Conflict is an entry together with the entries found to overlap it.
type Conflict struct {
	Entry         model.TimeEntry
	ConflictsWith []model.TimeEntry
}

// FindConflicts sorts entries by start and compares each entry with its
// successor only. A pair conflicts when the later entry starts strictly
// before the earlier one ends. Every pair is recorded in both directions.
//
// Non-adjacent overlaps are not detected: with A=[10:00,11:00),
// B=[10:10,10:20) and C=[10:30,10:40), only A and B are reported.
func FindConflicts(entries []model.TimeEntry) []Conflict {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b model.TimeEntry) int {
		return a.Start.Compare(b.Start)
	})

	var out []Conflict
	index := make(map[int64]int)
	record := func(e, other model.TimeEntry) {
		i, ok := index[e.ID]
		if !ok {
			i = len(out)
			index[e.ID] = i
			out = append(out, Conflict{Entry: e})
		}
		out[i].ConflictsWith = append(out[i].ConflictsWith, other)
	}

	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		_, prevEnd := prev.Interval()
		nextStart, _ := next.Interval()
		if nextStart.Before(prevEnd) {
			record(prev, next)
			record(next, prev)
		}
	}
	return out
}
