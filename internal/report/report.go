// Package report turns rule findings into the daily audit report and renders
// it for email.
package report

import "fmt"

// Entry is one row of the report. ID 0 marks the synthetic over-hours row.
type Entry struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Project     string `json:"project"`
	Reason      string `json:"reason"`
}

// Kind identifies which rule produced a section.
type Kind string

const (
	KindNames     Kind = "names"
	KindConflicts Kind = "conflicts"
	KindOverHours Kind = "over_hours"
	KindUnusual   Kind = "unusual_slots"
)

// Section groups the rows produced by a single rule.
type Section struct {
	Kind    Kind
	Title   string
	Entries []Entry
	// Callout sections hold a single summary row and render as a note
	// rather than a table.
	Callout bool
}

// Report is the assembled audit result for one day.
type Report struct {
	Date     string
	Sections []Section
	total    int
}

// Assemble builds the report from the four rule outputs. Empty inputs produce
// no section; when all are empty the report is all-clear.
func Assemble(names, conflicts, overHours, unusual []Entry, date string) Report {
	r := Report{Date: date}
	add := func(kind Kind, title string, entries []Entry, callout bool) {
		r.total += len(entries)
		if len(entries) == 0 {
			return
		}
		r.Sections = append(r.Sections, Section{Kind: kind, Title: title, Entries: entries, Callout: callout})
	}
	add(KindNames, "Invalid names", names, false)
	add(KindConflicts, "Conflicting entries", conflicts, false)
	add(KindOverHours, "Over hours", overHours, true)
	add(KindUnusual, "Unusual time slots", unusual, false)
	return r
}

// Total is the number of rows across all sections.
func (r Report) Total() int {
	return r.total
}

// AllClear reports whether no rule flagged anything.
func (r Report) AllClear() bool {
	return r.total == 0
}

// Section returns the section of the given kind, if present.
func (r Report) Section(kind Kind) (Section, bool) {
	for _, s := range r.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

// Subject is the email subject line.
func (r Report) Subject() string {
	if r.AllClear() {
		return fmt.Sprintf("Toggl Report for %s: All clear", r.Date)
	}
	return fmt.Sprintf("Toggl Report for %s: %d %s found", r.Date, r.total, pluralize(r.total, "issue"))
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
