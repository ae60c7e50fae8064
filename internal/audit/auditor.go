// Package audit runs the daily check: fetch yesterday's entries for one
// project, apply the rules, and hand the assembled report to a sink.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Tiliavir/toggl-audit/internal/model"
	"github.com/Tiliavir/toggl-audit/internal/report"
	"github.com/Tiliavir/toggl-audit/internal/rules"
	"github.com/Tiliavir/toggl-audit/internal/timecalc"
)

// EntrySource provides workspaces, projects and time entries.
type EntrySource interface {
	Workspaces(ctx context.Context) ([]model.Workspace, error)
	Projects(ctx context.Context, workspaceID int64) ([]model.Project, error)
	TimeEntries(ctx context.Context, workspaceID int64, from, to time.Time) ([]model.TimeEntry, error)
}

// ReportSink delivers an assembled report.
type ReportSink interface {
	Send(ctx context.Context, r report.Report) error
}

// Options are the business settings of a run. They are fixed for the
// lifetime of an Auditor.
type Options struct {
	Project         string
	Location        *time.Location
	MaxDailySeconds int64
}

// Auditor sequences one audit run.
type Auditor struct {
	opts   Options
	source EntrySource
	sink   ReportSink
	logger *slog.Logger
}

// New creates an Auditor. A nil Location selects rules.ReferenceTimezone and
// a zero MaxDailySeconds selects rules.DefaultMaxDailySeconds.
func New(opts Options, source EntrySource, sink ReportSink, logger *slog.Logger) (*Auditor, error) {
	if strings.TrimSpace(opts.Project) == "" {
		return nil, &ConfigurationError{Msg: "project name is empty"}
	}
	if opts.Location == nil {
		loc, err := time.LoadLocation(rules.ReferenceTimezone)
		if err != nil {
			return nil, &ConfigurationError{Msg: fmt.Sprintf("loading timezone %s: %v", rules.ReferenceTimezone, err)}
		}
		opts.Location = loc
	}
	if opts.MaxDailySeconds == 0 {
		opts.MaxDailySeconds = rules.DefaultMaxDailySeconds
	}
	return &Auditor{opts: opts, source: source, sink: sink, logger: logger}, nil
}

// Day is the set of entries audited for one date.
type Day struct {
	Date        string
	WorkspaceID int64
	Project     model.Project
	From, To    time.Time
	// Location is the zone the day and its unusual slots are read in.
	Location *time.Location
	Entries  []model.TimeEntry
}

// Summary counts the findings of a completed run.
type Summary struct {
	Date         string
	Entries      int
	NameIssues   int
	Conflicts    int
	OverHours    int
	UnusualSlots int
}

// Total is the number of report rows.
func (s Summary) Total() int {
	return s.NameIssues + s.Conflicts + s.OverHours + s.UnusualSlots
}

// Collect resolves the workspace and project and fetches the project's
// entries for the day before now.
func (a *Auditor) Collect(ctx context.Context, now time.Time) (Day, error) {
	workspaces, err := a.source.Workspaces(ctx)
	if err != nil {
		return Day{}, &UpstreamFetchError{Op: "workspaces", Err: err}
	}
	if len(workspaces) == 0 {
		return Day{}, &ConfigurationError{Msg: "no workspace found"}
	}
	wid := workspaces[0].ID

	project, err := a.resolveProject(ctx, wid)
	if err != nil {
		return Day{}, err
	}

	day, from, to := timecalc.Yesterday(now, a.opts.Location)
	date := day.Format(timecalc.DisplayLayout)
	a.logger.Debug("fetching time entries",
		"workspace", wid, "project", project.Name, "from", from.Format(time.RFC3339), "to", to.Format(time.RFC3339))

	all, err := a.source.TimeEntries(ctx, wid, from, to)
	if err != nil {
		return Day{}, &UpstreamFetchError{Op: "time entries", Err: err}
	}

	var entries []model.TimeEntry
	for _, e := range all {
		if e.ProjectID != project.ID {
			continue
		}
		if err := e.Validate(); err != nil {
			return Day{}, err
		}
		entries = append(entries, e)
	}
	a.logger.Debug("time entries fetched", "total", len(all), "project_entries", len(entries))

	return Day{Date: date, WorkspaceID: wid, Project: project, From: from, To: to, Location: a.opts.Location, Entries: entries}, nil
}

func (a *Auditor) resolveProject(ctx context.Context, workspaceID int64) (model.Project, error) {
	projects, err := a.source.Projects(ctx, workspaceID)
	if err != nil {
		return model.Project{}, &UpstreamFetchError{Op: "projects", Err: err}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, a.opts.Project) {
			return p, nil
		}
	}
	return model.Project{}, &ConfigurationError{Msg: fmt.Sprintf("project %q not found in workspace %d", a.opts.Project, workspaceID)}
}

// Evaluate applies the four rules to a collected day.
func (a *Auditor) Evaluate(day Day) report.Report {
	label := day.Project.Name
	names := report.NameIssues(day.Entries, label)
	conflicts := report.ConflictRows(rules.FindConflicts(day.Entries), label)
	overHours := report.OverHours(day.Entries, a.opts.MaxDailySeconds, label)
	unusual := report.UnusualSlots(rules.FindUnusualSlots(day.Entries, day.Location), label)
	return report.Assemble(names, conflicts, overHours, unusual, day.Date)
}

// Run performs one complete audit for the day before now and sends the
// report. Nothing is sent when any earlier step fails.
func (a *Auditor) Run(ctx context.Context, now time.Time) (Summary, error) {
	day, err := a.Collect(ctx, now)
	if err != nil {
		return Summary{}, err
	}

	rep := a.Evaluate(day)
	summary := Summary{Date: day.Date, Entries: len(day.Entries)}
	for _, s := range rep.Sections {
		switch s.Kind {
		case report.KindNames:
			summary.NameIssues = len(s.Entries)
		case report.KindConflicts:
			summary.Conflicts = len(s.Entries)
		case report.KindOverHours:
			summary.OverHours = len(s.Entries)
		case report.KindUnusual:
			summary.UnusualSlots = len(s.Entries)
		}
	}

	if err := a.sink.Send(ctx, rep); err != nil {
		return summary, &DispatchError{Err: err}
	}

	a.logger.Info(fmt.Sprintf("Report for %s completed", summary.Date),
		"issues", summary.Total(),
		"name_issues", summary.NameIssues,
		"conflicts", summary.Conflicts,
		"over_hours", summary.OverHours,
		"unusual_slots", summary.UnusualSlots)
	return summary, nil
}
