package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"covidbot/internal/common"
)

const (
	// Source Defaults
	DefaultSourceURL          = "https://www.worldometers.info/coronavirus/"
	DefaultSourceTimeoutSecs  = 5
	DefaultSourceUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultSourceMaxBodyBytes = 8 * 1024 * 1024
	DefaultMarkerSelector     = "div"
	DefaultMarkerLabel        = "Last updated"
	DefaultTableSelector      = "#main_table_countries_today"

	// Schedule Defaults
	DefaultScheduleRefreshAt = "10:00:00"
	DefaultScheduleTimezone  = "UTC"

	// Slack Defaults
	DefaultSlackTimeoutSecs = 30
	DefaultSlackMaxAttempts = 10

	// Report Defaults
	DefaultReportLocale = "en"

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3

	// EnvSlackWebhookURL overrides slack_config.webhook_url so the secret can
	// stay out of the config file.
	EnvSlackWebhookURL = "COVIDBOT_SLACK_WEBHOOK_URL"

	maxConfigFileSize = 1 * 1024 * 1024
)

type GlobalConfig struct {
	LogConfig      LogConfig      `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	ReportConfig   ReportConfig   `json:"report_config,omitempty" yaml:"report_config,omitempty"`
	ScheduleConfig ScheduleConfig `json:"schedule_config,omitempty" yaml:"schedule_config,omitempty"`
	SlackConfig    SlackConfig    `json:"slack_config,omitempty" yaml:"slack_config,omitempty"`
	SourceConfig   SourceConfig   `json:"source_config,omitempty" yaml:"source_config,omitempty"`
	WatchConfig    WatchConfig    `json:"watch_config,omitempty" yaml:"watch_config,omitempty"`
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:      NewDefaultLogConfig(),
		ReportConfig:   NewDefaultReportConfig(),
		ScheduleConfig: NewDefaultScheduleConfig(),
		SlackConfig:    NewDefaultSlackConfig(),
		SourceConfig:   NewDefaultSourceConfig(),
		WatchConfig:    NewDefaultWatchConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON
// and YAML formats, and applies environment overrides last.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		logger.Debug().Msg("No config file found, using defaults")
		applyEnvOverrides(cfg, logger)
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to read config file '%s'", filePath)
	}
	if len(data) > maxConfigFileSize {
		return nil, common.NewError("config file '%s' exceeds maximum size of %d bytes", filePath, maxConfigFileSize)
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	logger.Debug().Str("path", filePath).Msg("Configuration loaded")
	applyEnvOverrides(cfg, logger)
	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// applyEnvOverrides layers environment values over the loaded configuration.
func applyEnvOverrides(cfg *GlobalConfig, logger zerolog.Logger) {
	if webhookURL := os.Getenv(EnvSlackWebhookURL); webhookURL != "" {
		cfg.SlackConfig.WebhookURL = webhookURL
		logger.Debug().Str("env", EnvSlackWebhookURL).Msg("Slack webhook URL taken from environment")
	}
}
