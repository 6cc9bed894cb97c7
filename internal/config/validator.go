package config

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/robotswatch/robotswatch/internal/common"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "debug", "info", "warn", "error", "fatal":
			return true
		default:
			return false
		}
	})

	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		switch strings.ToLower(fl.Field().String()) {
		case "", "console", "json":
			return true
		default:
			return false
		}
	})

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			return common.NewConfigurationError("", first.Namespace(),
				"failed validation '"+first.Tag()+"'")
		}
		return common.WrapError(err, "config validation")
	}

	// Email dispatch needs a complete SMTP surface; validate the cross-field
	// requirements the struct tags cannot express.
	nc := cfg.NotificationConfig
	if nc.EmailsEnabled {
		switch {
		case nc.AdminEmail == "":
			return common.NewConfigurationError("notification_config", "admin_email", "required when emails are enabled")
		case nc.SenderEmail == "":
			return common.NewConfigurationError("notification_config", "sender_email", "required when emails are enabled")
		case nc.SMTPHost == "":
			return common.NewConfigurationError("notification_config", "smtp_host", "required when emails are enabled")
		}
	}

	return nil
}
