package notifier

import (
	"github.com/rs/zerolog"

	"github.com/robotswatch/robotswatch/internal/config"
	"github.com/robotswatch/robotswatch/internal/models"
)

// NotificationHelper gates and dispatches notifications. Dispatch failures are
// logged and swallowed: a broken mail relay must never affect classification,
// storage, or the processing of other sites.
type NotificationHelper struct {
	sender EmailSender
	cfg    config.NotificationConfig
	logger zerolog.Logger
}

// NewNotificationHelper creates a new NotificationHelper.
func NewNotificationHelper(sender EmailSender, cfg config.NotificationConfig, logger zerolog.Logger) *NotificationHelper {
	return &NotificationHelper{
		sender: sender,
		cfg:    cfg,
		logger: logger.With().Str("component", "NotificationHelper").Logger(),
	}
}

// NotifySite emails the site's admin about a FirstRun, Changed, or Error
// outcome. NoChange never triggers an email.
func (nh *NotificationHelper) NotifySite(outcome models.CheckOutcome) {
	if !nh.cfg.EmailsEnabled || nh.sender == nil {
		return
	}
	if outcome.Classification == models.ClassificationNoChange {
		return
	}
	if outcome.Site.AdminEmail == "" {
		nh.logger.Debug().Str("site", outcome.Site.Name).Msg("Site has no admin email, skipping notification")
		return
	}

	msg := FormatSiteMessage(outcome)
	if err := nh.sender.Send(msg); err != nil {
		nh.logger.Error().Err(err).
			Str("site", outcome.Site.Name).
			Str("classification", outcome.Classification.String()).
			Msg("Failed to send site notification")
		return
	}
	nh.logger.Info().
		Str("site", outcome.Site.Name).
		Str("classification", outcome.Classification.String()).
		Msg("Site notification sent")
}

// NotifyAdmin emails the run summary to the tool-wide admin address, attaching
// the main log when available.
func (nh *NotificationHelper) NotifyAdmin(summary *models.RunSummary, mainLogPath string) {
	if !nh.cfg.EmailsEnabled || nh.sender == nil {
		return
	}
	if nh.cfg.AdminEmail == "" {
		nh.logger.Debug().Msg("No admin email configured, skipping summary notification")
		return
	}

	msg := FormatAdminMessage(nh.cfg.AdminEmail, summary, mainLogPath)
	if err := nh.sender.Send(msg); err != nil {
		nh.logger.Error().Err(err).Str("run_id", summary.RunID).Msg("Failed to send admin summary")
		return
	}
	nh.logger.Info().Str("run_id", summary.RunID).Msg("Admin summary sent")
}
