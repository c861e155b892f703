package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briantully/acquia-cli/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://cloudapi.acquia.com/v1", cfg.API.Endpoint)
	assert.Equal(t, time.Second, cfg.PollInterval())
	assert.Equal(t, 300, cfg.Tasks.MaxAttempts)
	assert.Equal(t, "drush", cfg.Drush.Binary)
	assert.Equal(t, "sync", cfg.Drush.ConfigSet)
}

func TestFromYAMLOverlaysDefaults(t *testing.T) {
	cfg, err := config.FromYAML([]byte(`
api:
  endpoint: https://cloudapi.example.com/v1
  key: abc
  secret: shh
tasks:
  poll_interval_seconds: 5
report:
  timezone: Europe/Paris
`))
	require.NoError(t, err)
	assert.Equal(t, "https://cloudapi.example.com/v1", cfg.API.Endpoint)
	assert.Equal(t, 5*time.Second, cfg.PollInterval())
	// untouched keys keep their defaults
	assert.Equal(t, 300, cfg.Tasks.MaxAttempts)
	assert.Equal(t, "sync", cfg.Drush.ConfigSet)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Paris", loc.String())
}

func TestFromYAMLRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"not yaml", `{{nope`},
		{"empty endpoint", "api:\n  endpoint: \"\"\n"},
		{"zero poll interval", "tasks:\n  poll_interval_seconds: 0\n"},
		{"negative max attempts", "tasks:\n  max_attempts: -1\n"},
		{"unknown timezone", "report:\n  timezone: Mars/Olympus\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.FromYAML([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestUnboundedPollingAllowed(t *testing.T) {
	cfg, err := config.FromYAML([]byte("tasks:\n  max_attempts: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Tasks.MaxAttempts)
}

func TestLocationDefaultsToUTC(t *testing.T) {
	cfg := config.Default()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.API.Key = "key-1"
	cfg.API.Secret = "secret-1"
	cfg.Report.Timezone = "America/New_York"
	require.NoError(t, config.Save(dir, cfg))

	got, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadMissingFileMentionsLogin(t *testing.T) {
	_, err := config.Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth login")
}

func TestLoadOptionalFallsBackToDefaults(t *testing.T) {
	cfg, err := config.LoadOptional(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
