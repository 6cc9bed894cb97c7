package models

// MonitoredSite represents a single site whose robots.txt file is monitored.
// Name is the storage key: the per-site data directory is derived from it, so
// it must be unique across the registry.
type MonitoredSite struct {
	// URL is the absolute URL of the website homepage, with a trailing slash.
	URL string
	// Name is the website's identifier (letters and digits only).
	Name string
	// AdminEmail receives per-site alerts. May be empty when emails are disabled.
	AdminEmail string
}

// RobotsURL returns the URL of the site's robots.txt file.
func (s MonitoredSite) RobotsURL() string {
	return s.URL + "robots.txt"
}
