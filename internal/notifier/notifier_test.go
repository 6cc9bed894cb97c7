package notifier

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robotswatch/robotswatch/internal/config"
	"github.com/robotswatch/robotswatch/internal/models"
)

type fakeSender struct {
	sent    []EmailMessage
	sendErr error
}

func (f *fakeSender) Send(msg EmailMessage) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)
	return nil
}

var site = models.MonitoredSite{
	URL:        "https://example.com/",
	Name:       "Example",
	AdminEmail: "owner@example.com",
}

func strPtr(s string) *string { return &s }

func enabledConfig() config.NotificationConfig {
	cfg := config.NewDefaultNotificationConfig()
	cfg.EmailsEnabled = true
	cfg.AdminEmail = "admin@example.com"
	cfg.SenderEmail = "sender@example.com"
	cfg.SMTPHost = "smtp.example.com"
	return cfg
}

func outcomeOf(c models.Classification) models.CheckOutcome {
	outcome := models.CheckOutcome{
		Site:           site,
		Classification: c,
		Timestamp:      time.Now(),
	}
	switch c {
	case models.ClassificationFirstRun:
		outcome.NewContent = strPtr("User-agent: *\nDisallow:\n")
	case models.ClassificationChanged:
		outcome.NewContent = strPtr("User-agent: *\nDisallow: /\n")
		outcome.Diff = "- Disallow:\n+ Disallow: /\n"
	case models.ClassificationError:
		outcome.ErrorDetail = "'https://example.com/robots.txt' timed out before sending a valid response"
	}
	return outcome
}

func TestNotifySite_GatingMatrix(t *testing.T) {
	tests := []struct {
		name           string
		enabled        bool
		classification models.Classification
		wantSent       bool
	}{
		{"first run sends", true, models.ClassificationFirstRun, true},
		{"changed sends", true, models.ClassificationChanged, true},
		{"error sends", true, models.ClassificationError, true},
		{"no change never sends", true, models.ClassificationNoChange, false},
		{"disabled first run", false, models.ClassificationFirstRun, false},
		{"disabled changed", false, models.ClassificationChanged, false},
		{"disabled error", false, models.ClassificationError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{}
			cfg := enabledConfig()
			cfg.EmailsEnabled = tt.enabled

			nh := NewNotificationHelper(sender, cfg, zerolog.Nop())
			nh.NotifySite(outcomeOf(tt.classification))

			if tt.wantSent {
				require.Len(t, sender.sent, 1)
				assert.Equal(t, "owner@example.com", sender.sent[0].To)
			} else {
				assert.Empty(t, sender.sent)
			}
		})
	}
}

func TestNotifySite_NoEmailAddress(t *testing.T) {
	sender := &fakeSender{}
	nh := NewNotificationHelper(sender, enabledConfig(), zerolog.Nop())

	outcome := outcomeOf(models.ClassificationChanged)
	outcome.Site.AdminEmail = ""
	nh.NotifySite(outcome)

	assert.Empty(t, sender.sent)
}

func TestNotifySite_SendFailureSwallowed(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("smtp unreachable")}
	nh := NewNotificationHelper(sender, enabledConfig(), zerolog.Nop())

	assert.NotPanics(t, func() {
		nh.NotifySite(outcomeOf(models.ClassificationChanged))
	})
}

func TestNotifySite_Bodies(t *testing.T) {
	sender := &fakeSender{}
	nh := NewNotificationHelper(sender, enabledConfig(), zerolog.Nop())

	nh.NotifySite(outcomeOf(models.ClassificationFirstRun))
	nh.NotifySite(outcomeOf(models.ClassificationChanged))
	nh.NotifySite(outcomeOf(models.ClassificationError))
	require.Len(t, sender.sent, 3)

	firstRun := sender.sent[0]
	assert.Equal(t, "First Example robots.txt check complete", firstRun.Subject)
	assert.Contains(t, firstRun.Body, "-----START OF FILE-----")
	assert.Contains(t, firstRun.Body, "User-agent: *\nDisallow:\n")

	changed := sender.sent[1]
	assert.Equal(t, "Example robots.txt change", changed.Subject)
	assert.Contains(t, changed.Body, "https://example.com/robots.txt")
	assert.Contains(t, changed.Body, "+ Disallow: /")

	errMsg := sender.sent[2]
	assert.Equal(t, "Example robots.txt check error", errMsg.Subject)
	assert.Contains(t, errMsg.Body, "timed out")
}

func TestNotifyAdmin(t *testing.T) {
	sender := &fakeSender{}
	nh := NewNotificationHelper(sender, enabledConfig(), zerolog.Nop())

	summary := models.NewRunSummary("run-1", 3, time.Now())
	summary.Record(outcomeOf(models.ClassificationFirstRun))
	summary.Record(outcomeOf(models.ClassificationNoChange))
	summary.Record(outcomeOf(models.ClassificationError))
	summary.FinishedAt = time.Now()

	nh.NotifyAdmin(summary, "/data/main_log.txt")

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "admin@example.com", msg.To)
	assert.Contains(t, msg.Body, "run-1")
	assert.Contains(t, msg.Body, "No change: 1. Changed: 0. First run: 1. Error: 1.")
	assert.Contains(t, msg.Body, "timed out")
	assert.Equal(t, []string{"/data/main_log.txt"}, msg.Attachments)
}

func TestNotifyAdmin_Disabled(t *testing.T) {
	sender := &fakeSender{}
	cfg := enabledConfig()
	cfg.EmailsEnabled = false
	nh := NewNotificationHelper(sender, cfg, zerolog.Nop())

	nh.NotifyAdmin(models.NewRunSummary("run-1", 0, time.Now()), "")
	assert.Empty(t, sender.sent)
}
