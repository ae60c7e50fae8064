package cmd

import (
	"log/slog"

	"github.com/Tiliavir/toggl-audit/internal/audit"
	"github.com/Tiliavir/toggl-audit/internal/config"
	"github.com/Tiliavir/toggl-audit/internal/sendgrid"
	"github.com/Tiliavir/toggl-audit/internal/toggl"
)

// newAuditor connects the Toggl client and, when withMail is set, the
// SendGrid mailer to an Auditor built from cfg.
func newAuditor(cfg config.Config, logger *slog.Logger, withMail bool) (*audit.Auditor, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, &audit.ConfigurationError{Msg: err.Error()}
	}

	source := toggl.NewClient(cfg.Toggl.BaseURL, cfg.Toggl.APIToken, cfg.Timeout())

	var sink audit.ReportSink
	if withMail {
		sink = sendgrid.NewMailer(sendgrid.Options{
			BaseURL: cfg.Mail.BaseURL,
			APIKey:  cfg.Mail.SendGridAPIKey,
			From:    cfg.Mail.From,
			To:      cfg.Mail.To,
			Timeout: cfg.Timeout(),
		}, logger)
	}

	return audit.New(audit.Options{
		Project:         cfg.Audit.Project,
		Location:        loc,
		MaxDailySeconds: cfg.Audit.MaxDailySeconds,
	}, source, sink, logger)
}
