package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/tidwall/jsonc"

	"github.com/Tiliavir/toggl-audit/internal/rules"
)

// Config is the root configuration for toggl-audit, stored in
// ~/.toggl-audit/config.json. The file may contain // and /* */ comments.
type Config struct {
	Toggl TogglConfig `json:"toggl"`
	Mail  MailConfig  `json:"mail"`
	Audit AuditConfig `json:"audit"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`
}

// TogglConfig holds the Toggl Track API settings.
type TogglConfig struct {
	APIToken string `json:"api_token"`
	BaseURL  string `json:"base_url"`
}

// MailConfig holds the SendGrid settings and the report recipients.
type MailConfig struct {
	SendGridAPIKey string   `json:"sendgrid_api_key"`
	BaseURL        string   `json:"base_url"`
	From           string   `json:"from"`
	To             []string `json:"to"`
}

// AuditConfig holds the business rules that are allowed to vary.
type AuditConfig struct {
	Project         string `json:"project"`
	Timezone        string `json:"timezone"`
	MaxDailySeconds int64  `json:"max_daily_seconds"`
	// TimeoutSeconds bounds each HTTP request to Toggl and SendGrid.
	TimeoutSeconds int `json:"timeout_seconds"`
}

const (
	DefaultProject         = "ThinkGIS"
	DefaultTimezone        = rules.ReferenceTimezone
	DefaultMaxDailySeconds = rules.DefaultMaxDailySeconds
	DefaultTimeoutSeconds  = 30
	DefaultLogLevel        = "info"
)

// Environment variables that override the file.
const (
	EnvTogglToken  = "TOGGL_API_TOKEN"
	EnvSendGridKey = "SENDGRID_API_KEY"
	EnvEmailFrom   = "EMAIL_FROM"
	EnvEmailTo     = "EMAIL_TO"
	EnvProject     = "TOGGL_AUDIT_PROJECT"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Audit: AuditConfig{
			Project:         DefaultProject,
			Timezone:        DefaultTimezone,
			MaxDailySeconds: DefaultMaxDailySeconds,
			TimeoutSeconds:  DefaultTimeoutSeconds,
		},
		LogLevel: DefaultLogLevel,
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `// toggl-audit configuration – ~/.toggl-audit/config.json
//
// Secrets may be left empty here and supplied through the environment
// instead: TOGGL_API_TOKEN, SENDGRID_API_KEY, EMAIL_FROM, EMAIL_TO.
{
  // ── Toggl Track ─────────────────────────────────────────────────────────
  "toggl": {
    // Personal API token from https://track.toggl.com/profile
    "api_token": ""
  },

  // ── Report delivery (SendGrid) ──────────────────────────────────────────
  "mail": {
    "sendgrid_api_key": "",
    // Must be a verified SendGrid sender.
    "from": "",
    // One or more recipients. EMAIL_TO accepts a comma-separated list.
    "to": []
  },

  // ── Audit rules ─────────────────────────────────────────────────────────
  "audit": {
    // Project to audit, matched case-insensitively.
    "project": "ThinkGIS",
    // IANA timezone defining "yesterday" and the unusual time slots.
    "timezone": "America/Los_Angeles",
    // Daily budget in seconds (27000 = 7.5 hrs).
    "max_daily_seconds": 27000,
    "timeout_seconds": 30
  },

  "log_level": "info"
}
`

// FilePath returns the path to ~/.toggl-audit/config.json.
func FilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".toggl-audit", "config.json"), nil
}

// Load reads the config file at its default location, creating it with
// annotated defaults on first run, then applies environment overrides.
func Load() (Config, error) {
	path, err := FilePath()
	if err != nil {
		return defaultConfig(), err
	}
	return LoadFrom(path, os.Getenv)
}

// LoadFrom reads the config file at path and applies overrides looked up
// through getenv. A missing file is created from the template.
func LoadFrom(path string, getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := sonic.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	applyEnv(&cfg, getenv)
	fillDefaults(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvTogglToken); v != "" {
		cfg.Toggl.APIToken = v
	}
	if v := getenv(EnvSendGridKey); v != "" {
		cfg.Mail.SendGridAPIKey = v
	}
	if v := getenv(EnvEmailFrom); v != "" {
		cfg.Mail.From = v
	}
	if v := getenv(EnvEmailTo); v != "" {
		cfg.Mail.To = splitList(v)
	}
	if v := getenv(EnvProject); v != "" {
		cfg.Audit.Project = v
	}
}

// fillDefaults replaces zero-value fields so callers always get a usable
// Config even if the user only partially fills in the file.
func fillDefaults(cfg *Config) {
	if cfg.Audit.Project == "" {
		cfg.Audit.Project = DefaultProject
	}
	if cfg.Audit.Timezone == "" {
		cfg.Audit.Timezone = DefaultTimezone
	}
	if cfg.Audit.MaxDailySeconds == 0 {
		cfg.Audit.MaxDailySeconds = DefaultMaxDailySeconds
	}
	if cfg.Audit.TimeoutSeconds == 0 {
		cfg.Audit.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports every missing or malformed setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Toggl.APIToken == "" {
		errs = append(errs, fmt.Errorf("toggl.api_token is empty (set %s)", EnvTogglToken))
	}
	if c.Mail.SendGridAPIKey == "" {
		errs = append(errs, fmt.Errorf("mail.sendgrid_api_key is empty (set %s)", EnvSendGridKey))
	}
	if c.Mail.From == "" {
		errs = append(errs, fmt.Errorf("mail.from is empty (set %s)", EnvEmailFrom))
	}
	if len(c.Mail.To) == 0 {
		errs = append(errs, fmt.Errorf("mail.to is empty (set %s)", EnvEmailTo))
	}
	if _, err := time.LoadLocation(c.Audit.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("audit.timezone %q: %w", c.Audit.Timezone, err))
	}
	if c.Audit.MaxDailySeconds < 0 {
		errs = append(errs, fmt.Errorf("audit.max_daily_seconds must not be negative"))
	}
	if c.Audit.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("audit.timeout_seconds must not be negative"))
	}
	return errors.Join(errs...)
}

// Location loads the configured reference timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Audit.Timezone)
}

// Timeout is the per-request HTTP timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Audit.TimeoutSeconds) * time.Second
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
