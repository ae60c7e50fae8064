// Package sendgrid delivers audit reports through the SendGrid v3 mail API.
package sendgrid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/toggl-audit/internal/report"
)

// DefaultBaseURL is the SendGrid API root.
const DefaultBaseURL = "https://api.sendgrid.com"

// Options configures a Mailer.
type Options struct {
	BaseURL string
	APIKey  string
	From    string
	To      []string
	Timeout time.Duration
}

// Mailer sends reports as multipart (text + HTML) emails.
type Mailer struct {
	baseURL    string
	from       string
	to         []string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewMailer creates a Mailer. The API key is sent as a bearer token.
func NewMailer(opts Options, logger *slog.Logger) *Mailer {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.APIKey, TokenType: "Bearer"})
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = opts.Timeout
	return &Mailer{
		baseURL:    baseURL,
		from:       opts.From,
		to:         opts.To,
		httpClient: httpClient,
		logger:     logger,
	}
}

type address struct {
	Email string `json:"email"`
}

type personalization struct {
	To []address `json:"to"`
}

type content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type message struct {
	Personalizations []personalization `json:"personalizations"`
	From             address           `json:"from"`
	Subject          string            `json:"subject"`
	Content          []content         `json:"content"`
}

func (m *Mailer) buildMessage(r report.Report) (message, error) {
	html, err := r.HTML()
	if err != nil {
		return message{}, err
	}
	to := make([]address, len(m.to))
	for i, addr := range m.to {
		to[i] = address{Email: addr}
	}
	return message{
		Personalizations: []personalization{{To: to}},
		From:             address{Email: m.from},
		Subject:          r.Subject(),
		Content: []content{
			{Type: "text/plain", Value: r.Text()},
			{Type: "text/html", Value: html},
		},
	}, nil
}

// Send delivers the report. Any non-2xx response is an error.
func (m *Mailer) Send(ctx context.Context, r report.Report) error {
	msg, err := m.buildMessage(r)
	if err != nil {
		return err
	}
	payload, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encoding mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v3/mail/send", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sendgrid error %d: %s", resp.StatusCode, string(body))
	}

	m.logger.Info("report email sent", "to", m.to, "issues", r.Total(), "subject", msg.Subject)
	return nil
}
