package model

import (
	"fmt"
	"time"
)

// TimeEntry is a single Toggl time entry as returned by the Track API.
// Entries are never modified after they have been fetched.
type TimeEntry struct {
	ID          int64     `json:"id"`
	WorkspaceID int64     `json:"workspace_id"`
	ProjectID   int64     `json:"project_id"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	// Duration is in seconds. Toggl reports running timers as negative values.
	Duration int64 `json:"duration"`
}

// End returns the exclusive end of the entry's active interval.
func (e TimeEntry) End() time.Time {
	return e.Start.Add(time.Duration(e.Duration) * time.Second)
}

// Interval returns the half-open active interval [start, end).
func (e TimeEntry) Interval() (time.Time, time.Time) {
	return e.Start, e.End()
}

// Validate rejects entries the audit rules cannot evaluate.
func (e TimeEntry) Validate() error {
	if e.Start.IsZero() {
		return &ValidationError{EntryID: e.ID, Reason: "missing start time"}
	}
	if e.Duration < 0 {
		return &ValidationError{EntryID: e.ID, Reason: fmt.Sprintf("negative duration %d (timer still running?)", e.Duration)}
	}
	return nil
}

// ValidationError reports a malformed time entry.
type ValidationError struct {
	EntryID int64
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid time entry %d: %s", e.EntryID, e.Reason)
}

// Workspace is a Toggl workspace.
type Workspace struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Project is a Toggl project.
type Project struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
}
