package config

// MonitorConfig governs the site registry and robots.txt fetch behavior.
type MonitorConfig struct {
	SitesFile           string `json:"sites_file,omitempty" yaml:"sites_file,omitempty" validate:"required"`
	UserAgent           string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" validate:"required"`
	FetchTimeoutSeconds int    `json:"fetch_timeout_seconds,omitempty" yaml:"fetch_timeout_seconds,omitempty" validate:"gte=1,lte=300"`
	MaxContentSize      int    `json:"max_content_size,omitempty" yaml:"max_content_size,omitempty" validate:"gte=1024"`
}

// NewDefaultMonitorConfig creates default monitor configuration.
func NewDefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		SitesFile:           "monitored_sites.csv",
		UserAgent:           "robotswatch/1.0 (+https://github.com/robotswatch/robotswatch)",
		FetchTimeoutSeconds: 30,
		MaxContentSize:      1024 * 1024,
	}
}
