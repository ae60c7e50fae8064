package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFromWritesTemplateOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := LoadFrom(path, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configTemplate, string(data))

	// The template itself must parse back to the defaults.
	again, err := LoadFrom(path, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "ThinkGIS", again.Audit.Project)
	assert.Equal(t, int64(27000), again.Audit.MaxDailySeconds)
	assert.Equal(t, "America/Los_Angeles", again.Audit.Timezone)
	assert.Empty(t, again.Mail.To)
}

func TestLoadFromParsesCommentsAndFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
  // inline docs are fine
  "toggl": {"api_token": "file-token"},
  /* block comment */
  "mail": {"from": "audit@example.com", "to": ["lead@example.com"],},
  "audit": {"project": "Mapping"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFrom(path, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "file-token", cfg.Toggl.APIToken)
	assert.Equal(t, "audit@example.com", cfg.Mail.From)
	assert.Equal(t, []string{"lead@example.com"}, cfg.Mail.To)
	assert.Equal(t, "Mapping", cfg.Audit.Project)
	assert.Equal(t, DefaultTimezone, cfg.Audit.Timezone)
	assert.Equal(t, int64(DefaultMaxDailySeconds), cfg.Audit.MaxDailySeconds)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadFromEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"toggl": {"api_token": "file-token"}, "mail": {"to": ["file@example.com"]}}`), 0o600))

	cfg, err := LoadFrom(path, envMap(map[string]string{
		EnvTogglToken:  "env-token",
		EnvSendGridKey: "SG.env",
		EnvEmailFrom:   "from@example.com",
		EnvEmailTo:     " a@example.com, ,b@example.com ",
		EnvProject:     "Other",
	}))
	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.Toggl.APIToken)
	assert.Equal(t, "SG.env", cfg.Mail.SendGridAPIKey)
	assert.Equal(t, "from@example.com", cfg.Mail.From)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Mail.To)
	assert.Equal(t, "Other", cfg.Audit.Project)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"toggl": `), 0o600))

	_, err := LoadFrom(path, envMap(nil))
	assert.ErrorContains(t, err, "parsing config file")
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{EnvTogglToken, EnvSendGridKey, EnvEmailFrom, EnvEmailTo} {
		assert.Contains(t, err.Error(), want)
	}

	cfg.Toggl.APIToken = "t"
	cfg.Mail.SendGridAPIKey = "k"
	cfg.Mail.From = "f@example.com"
	cfg.Mail.To = []string{"t@example.com"}
	assert.NoError(t, cfg.Validate())

	cfg.Audit.Timezone = "Mars/Olympus_Mons"
	assert.ErrorContains(t, cfg.Validate(), "audit.timezone")
}
