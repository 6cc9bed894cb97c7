// Package notifier composes and dispatches per-site and admin summary emails.
package notifier

import (
	"gopkg.in/gomail.v2"

	"github.com/robotswatch/robotswatch/internal/common"
	"github.com/robotswatch/robotswatch/internal/config"
)

// EmailMessage is one outbound email.
type EmailMessage struct {
	To          string
	Subject     string
	Body        string
	Attachments []string
}

// EmailSender dispatches a single email. Implementations must be safe to call
// sequentially; the orchestrator never sends concurrently.
type EmailSender interface {
	Send(msg EmailMessage) error
}

// SMTPSender sends email through an SMTP relay using gomail.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender creates an SMTPSender from the notification configuration.
func NewSMTPSender(cfg config.NotificationConfig) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, common.NewConfigurationError("notification_config", "smtp_host", "SMTP host is required")
	}
	if cfg.SenderEmail == "" {
		return nil, common.NewConfigurationError("notification_config", "sender_email", "sender address is required")
	}

	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SenderEmail, cfg.SMTPPassword),
		from:   cfg.SenderEmail,
	}, nil
}

// Send dials the SMTP relay and dispatches the message.
func (s *SMTPSender) Send(msg EmailMessage) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	for _, path := range msg.Attachments {
		m.Attach(path)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return common.WrapError(err, "failed to send email to '"+msg.To+"'")
	}
	return nil
}
