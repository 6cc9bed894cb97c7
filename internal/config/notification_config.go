package config

// NotificationConfig defines configuration for email notifications. The single
// EmailsEnabled flag gates both per-site alerts and the admin summary.
type NotificationConfig struct {
	EmailsEnabled bool   `json:"emails_enabled" yaml:"emails_enabled"`
	AdminEmail    string `json:"admin_email,omitempty" yaml:"admin_email,omitempty" validate:"omitempty,email"`
	SenderEmail   string `json:"sender_email,omitempty" yaml:"sender_email,omitempty" validate:"omitempty,email"`
	SMTPHost      string `json:"smtp_host,omitempty" yaml:"smtp_host,omitempty" validate:"omitempty,hostname_rfc1123"`
	SMTPPort      int    `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" validate:"gte=1,lte=65535"`
	// SMTPPassword is never read from the config file; it is injected from the
	// environment at startup so credentials stay out of checked-in config.
	SMTPPassword string `json:"-" yaml:"-"`
}

// NewDefaultNotificationConfig creates default notification configuration.
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		EmailsEnabled: false,
		AdminEmail:    "",
		SenderEmail:   "",
		SMTPHost:      "",
		SMTPPort:      587,
	}
}
