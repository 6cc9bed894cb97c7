package config

// HistoryConfig controls the sqlite run history database.
type HistoryConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// DatabasePath defaults to <data_dir>/history.db when empty.
	DatabasePath string `json:"database_path,omitempty" yaml:"database_path,omitempty"`
}

// NewDefaultHistoryConfig creates default history configuration.
func NewDefaultHistoryConfig() HistoryConfig {
	return HistoryConfig{
		Enabled:      true,
		DatabasePath: "",
	}
}
