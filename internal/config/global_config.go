package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/robotswatch/robotswatch/internal/common"
)

// GlobalConfig contains all configuration sections for the application.
type GlobalConfig struct {
	MonitorConfig      MonitorConfig      `json:"monitor_config,omitempty" yaml:"monitor_config,omitempty"`
	StorageConfig      StorageConfig      `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	NotificationConfig NotificationConfig `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	LogConfig          LogConfig          `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	HistoryConfig      HistoryConfig      `json:"history_config,omitempty" yaml:"history_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		MonitorConfig:      NewDefaultMonitorConfig(),
		StorageConfig:      NewDefaultStorageConfig(),
		NotificationConfig: NewDefaultNotificationConfig(),
		LogConfig:          NewDefaultLogConfig(),
		HistoryConfig:      NewDefaultHistoryConfig(),
	}
}

// HistoryDatabasePath resolves the run history database path, defaulting to
// history.db inside the data directory.
func (c *GlobalConfig) HistoryDatabasePath() string {
	if c.HistoryConfig.DatabasePath != "" {
		return c.HistoryConfig.DatabasePath
	}
	return filepath.Join(c.StorageConfig.DataDir, "history.db")
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// The config file path is resolved via GetConfigPath; when no file is found the
// defaults are returned as-is. YAML is preferred when the extension is
// .yaml/.yml, otherwise the content is parsed as JSON.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		if providedPath != "" {
			return nil, common.NewConfigurationError("", "config_file", "config file does not exist: "+providedPath)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to read config file '"+filePath+"'")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension.
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if ext == ".yaml" || ext == ".yml" {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return common.WrapErrorf(err, "failed to unmarshal YAML from '%s'", filePath)
		}
		return nil
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.WrapErrorf(err, "failed to unmarshal JSON from '%s'", filePath)
	}
	return nil
}
