package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/toggl-audit/internal/audit"
	"github.com/Tiliavir/toggl-audit/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "toggl-audit",
	Short: "Audit yesterday's Toggl entries and email a report",
	Long: `toggl-audit checks yesterday's time entries of one Toggl project against
four rules (entry names, overlaps, daily hours, unusual time slots) and emails
a single summary report through SendGrid.

Settings are read from ~/.toggl-audit/config.json and the environment.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAudit,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.AddCommand(entriesCmd)
}

// exitCode maps configuration problems to 2 and every other failure to 1.
func exitCode(err error) int {
	var cfgErr *audit.ConfigurationError
	if errors.As(err, &cfgErr) {
		return 2
	}
	return 1
}

func runAudit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return &audit.ConfigurationError{Msg: err.Error()}
	}
	logger := newLogger(cfg.LogLevel)

	auditor, err := newAuditor(cfg, logger, true)
	if err != nil {
		return err
	}

	_, err = auditor.Run(cmd.Context(), time.Now())
	return err
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, &audit.ConfigurationError{Msg: err.Error()}
	}
	return cfg, nil
}
