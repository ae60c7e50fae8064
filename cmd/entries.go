package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggl-audit/internal/audit"
	"github.com/Tiliavir/toggl-audit/internal/timecalc"
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List yesterday's entries of the audited project without sending a report",
	Args:  cobra.NoArgs,
	RunE:  runEntries,
}

func runEntries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Toggl.APIToken == "" {
		return &audit.ConfigurationError{Msg: "toggl.api_token is empty (set TOGGL_API_TOKEN)"}
	}

	auditor, err := newAuditor(cfg, newLogger(cfg.LogLevel), false)
	if err != nil {
		return err
	}
	day, err := auditor.Collect(cmd.Context(), time.Now())
	if err != nil {
		return err
	}

	printEntries(os.Stdout, day)
	return nil
}

// printEntries prints one line per entry in the audited timezone.
func printEntries(w io.Writer, day audit.Day) {
	fmt.Fprintf(w, "%s – %s\n", day.Date, day.Project.Name)
	if len(day.Entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	var total int64
	for _, e := range day.Entries {
		start, end := e.Interval()
		start, end = start.In(day.Location), end.In(day.Location)
		fmt.Fprintf(w, "%s–%s  [%d] %s (%s)\n",
			start.Format("15:04"), end.Format("15:04"), e.ID, e.Description, timecalc.FormatDuration(e.Duration))
		total += e.Duration
	}
	fmt.Fprintf(w, "Total: %s\n", timecalc.FormatHoursMinutes(total))
}
