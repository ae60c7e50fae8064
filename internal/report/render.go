package report

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(goldmark.WithExtensions(extension.Table))
	})
	return markdownInstance
}

// Text renders the report as the plain-text email body.
func (r Report) Text() string {
	var b strings.Builder
	if r.AllClear() {
		fmt.Fprintf(&b, "All clear for %s: no issues were found in the time entries.\n", r.Date)
		return b.String()
	}

	fmt.Fprintf(&b, "Toggl Report for %s: %d %s found.\n", r.Date, r.total, pluralize(r.total, "issue"))
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "\n%s (%d):\n", s.Title, len(s.Entries))
		for _, e := range s.Entries {
			if s.Callout {
				fmt.Fprintf(&b, "  %s\n", e.Reason)
				continue
			}
			fmt.Fprintf(&b, "  • [%d] %q (%s): %s\n", e.ID, e.Description, e.Project, e.Reason)
		}
	}
	return b.String()
}

// Markdown renders the report as GitHub-flavoured Markdown, the source of the
// HTML body.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Toggl Report for %s\n\n", r.Date)

	if r.AllClear() {
		b.WriteString("All clear! No issues were found in the time entries.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**%d %s** found.\n", r.total, pluralize(r.total, "issue"))
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", s.Title)
		if s.Callout {
			for _, e := range s.Entries {
				fmt.Fprintf(&b, "> **%s**\n", escapeText(e.Reason))
			}
			continue
		}
		fmt.Fprintf(&b, "**%d** %s\n\n", len(s.Entries), entryNoun(len(s.Entries)))
		b.WriteString("| ID | Description | Project | Reason |\n")
		b.WriteString("|---:|---|---|---|\n")
		for _, e := range s.Entries {
			fmt.Fprintf(&b, "| %d | %s | %s | %s |\n", e.ID, escapeCell(e.Description), escapeCell(e.Project), escapeCell(e.Reason))
		}
	}
	return b.String()
}

// HTML renders the Markdown form of the report to HTML.
func (r Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := markdown().Convert([]byte(r.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("rendering report html: %w", err)
	}
	return buf.String(), nil
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"<", `\<`,
	"[", `\[`,
	"]", `\]`,
	"~", `\~`,
)

func entryNoun(n int) string {
	if n == 1 {
		return "entry"
	}
	return "entries"
}

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = escapeText(s)
	return strings.ReplaceAll(s, "|", `\|`)
}
