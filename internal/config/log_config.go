package config

// LogConfig configures the application log. This is distinct from the main log
// and per-site logs in the data directory, which are data artifacts owned by
// the datastore.
type LogConfig struct {
	LogLevel     string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
	LogFormat    string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,logformat"`
	LogFile      string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	MaxLogSizeMB int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty" validate:"gte=1"`
	MaxLogBackups int   `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty" validate:"gte=0"`
}

// NewDefaultLogConfig creates default log configuration.
func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogLevel:      "info",
		LogFormat:     "console",
		LogFile:       "",
		MaxLogSizeMB:  100,
		MaxLogBackups: 3,
	}
}
