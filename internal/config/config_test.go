package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultSourceURL, cfg.SourceConfig.URL)
	assert.Equal(t, DefaultSourceTimeoutSecs, cfg.SourceConfig.TimeoutSecs)
	assert.Equal(t, DefaultMarkerLabel, cfg.SourceConfig.MarkerLabel)
	assert.Equal(t, DefaultTableSelector, cfg.SourceConfig.TableSelector)
	assert.Equal(t, DefaultScheduleRefreshAt, cfg.ScheduleConfig.RefreshAt)
	assert.Equal(t, DefaultScheduleTimezone, cfg.ScheduleConfig.Timezone)
	assert.Equal(t, DefaultSlackMaxAttempts, cfg.SlackConfig.MaxAttempts)
	assert.Equal(t, DefaultSlackTimeoutSecs, cfg.SlackConfig.TimeoutSecs)
	assert.Equal(t, DefaultReportLocale, cfg.ReportConfig.Locale)
	assert.Equal(t, DefaultLogLevel, cfg.LogConfig.LogLevel)
	assert.Empty(t, cfg.WatchConfig.Countries)
	assert.Empty(t, cfg.SlackConfig.WebhookURL)
}

func TestLoadGlobalConfig_YAML(t *testing.T) {
	configContent := `
source_config:
  url: "https://stats.example.com/covid"
  timeout_secs: 10
schedule_config:
  refresh_at: "23:50:00"
  timezone: "Europe/Brussels"
slack_config:
  webhook_url: "https://hooks.slack.com/services/T000/B000/XXX"
  channel: "#covid"
watch_config:
  countries:
    - name: "Belgium"
      intro: ":flag-be: *Belgium*"
    - name: "USA"
      intro: ":flag-us: *United States*"
`
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://stats.example.com/covid", cfg.SourceConfig.URL)
	assert.Equal(t, 10, cfg.SourceConfig.TimeoutSecs)
	assert.Equal(t, "23:50:00", cfg.ScheduleConfig.RefreshAt)
	assert.Equal(t, "Europe/Brussels", cfg.ScheduleConfig.Timezone)
	assert.Equal(t, "https://hooks.slack.com/services/T000/B000/XXX", cfg.SlackConfig.WebhookURL)
	assert.Equal(t, "#covid", cfg.SlackConfig.Channel)
	require.Len(t, cfg.WatchConfig.Countries, 2)
	assert.Equal(t, "Belgium", cfg.WatchConfig.Countries[0].Name)
	assert.Equal(t, ":flag-be: *Belgium*", cfg.WatchConfig.Countries[0].Intro)
	assert.Equal(t, "USA", cfg.WatchConfig.Countries[1].Name)

	// Unset sections keep their defaults.
	assert.Equal(t, DefaultMarkerLabel, cfg.SourceConfig.MarkerLabel)
	assert.Equal(t, DefaultSlackMaxAttempts, cfg.SlackConfig.MaxAttempts)
}

func TestLoadGlobalConfig_JSON(t *testing.T) {
	configContent := `{
		"source_config": {"url": "https://stats.example.com/covid"},
		"slack_config": {"webhook_url": "https://hooks.slack.com/services/T000/B000/YYY"}
	}`
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.json")
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "https://stats.example.com/covid", cfg.SourceConfig.URL)
	assert.Equal(t, "https://hooks.slack.com/services/T000/B000/YYY", cfg.SlackConfig.WebhookURL)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.yaml", zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("source_config: [broken"), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadGlobalConfig_EnvWebhookOverride(t *testing.T) {
	configContent := `
slack_config:
  webhook_url: "https://hooks.slack.com/services/T000/B000/FILE"
`
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	t.Setenv(EnvSlackWebhookURL, "https://hooks.slack.com/services/T000/B000/ENV")

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "https://hooks.slack.com/services/T000/B000/ENV", cfg.SlackConfig.WebhookURL)
}

func TestGetConfigPath(t *testing.T) {
	t.Run("explicit flag returned verbatim", func(t *testing.T) {
		assert.Equal(t, "/some/path/config.yaml", GetConfigPath("/some/path/config.yaml"))
	})

	t.Run("environment variable", func(t *testing.T) {
		tempDir := t.TempDir()
		configFile := filepath.Join(tempDir, "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("{}"), 0644))

		t.Setenv(EnvConfigPath, configFile)
		assert.Equal(t, configFile, GetConfigPath(""))
	})

	t.Run("environment variable pointing nowhere is skipped", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "/nonexistent/config.yaml")
		// Falls through to cwd/executable discovery; whatever it finds, it
		// must not be the bogus env path.
		assert.NotEqual(t, "/nonexistent/config.yaml", GetConfigPath(""))
	})
}

func validConfigForTest() *GlobalConfig {
	cfg := NewDefaultGlobalConfig()
	cfg.SlackConfig.WebhookURL = "https://hooks.slack.com/services/T000/B000/XXX"
	cfg.WatchConfig.Countries = []WatchedCountry{
		{Name: "Belgium", Intro: ":flag-be: *Belgium*"},
	}
	return cfg
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cfg *GlobalConfig)
		expectErr bool
	}{
		{
			name:      "valid config",
			mutate:    func(cfg *GlobalConfig) {},
			expectErr: false,
		},
		{
			name:      "missing webhook URL",
			mutate:    func(cfg *GlobalConfig) { cfg.SlackConfig.WebhookURL = "" },
			expectErr: true,
		},
		{
			name:      "malformed webhook URL",
			mutate:    func(cfg *GlobalConfig) { cfg.SlackConfig.WebhookURL = "not-a-url" },
			expectErr: true,
		},
		{
			name:      "malformed refresh time",
			mutate:    func(cfg *GlobalConfig) { cfg.ScheduleConfig.RefreshAt = "25:99" },
			expectErr: true,
		},
		{
			name:      "unknown timezone",
			mutate:    func(cfg *GlobalConfig) { cfg.ScheduleConfig.Timezone = "Mars/Olympus_Mons" },
			expectErr: true,
		},
		{
			name:      "unknown log level",
			mutate:    func(cfg *GlobalConfig) { cfg.LogConfig.LogLevel = "verbose" },
			expectErr: true,
		},
		{
			name:      "unknown log format",
			mutate:    func(cfg *GlobalConfig) { cfg.LogConfig.LogFormat = "xml" },
			expectErr: true,
		},
		{
			name:      "malformed report locale",
			mutate:    func(cfg *GlobalConfig) { cfg.ReportConfig.Locale = "!!" },
			expectErr: true,
		},
		{
			name:      "watched country without name",
			mutate:    func(cfg *GlobalConfig) { cfg.WatchConfig.Countries[0].Name = "" },
			expectErr: true,
		},
		{
			name:      "watched country without intro",
			mutate:    func(cfg *GlobalConfig) { cfg.WatchConfig.Countries[0].Intro = "" },
			expectErr: true,
		},
		{
			name:      "negative delivery attempts",
			mutate:    func(cfg *GlobalConfig) { cfg.SlackConfig.MaxAttempts = -1 },
			expectErr: true,
		},
		{
			name:      "source timeout above bound",
			mutate:    func(cfg *GlobalConfig) { cfg.SourceConfig.TimeoutSecs = 301 },
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfigForTest()
			tt.mutate(cfg)

			err := ValidateConfig(cfg)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
