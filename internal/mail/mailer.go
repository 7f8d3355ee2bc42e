// Package mail sends transactional email over SMTP.
package mail

import (
	"fmt"

	"inkpulse/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// Mailer sends a single message. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer builds a Mailer from the SMTP settings in cfg.
func NewSMTPMailer(cfg *config.Config) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.MailFrom,
	}
}

func (m *smtpMailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// OTPBody renders the password-reset mail for a one-time code.
func OTPBody(code string) string {
	return fmt.Sprintf(
		"<p>Your Inkpulse password reset code is:</p><h2>%s</h2><p>It expires in 10 minutes. If you did not request this, ignore this mail.</p>",
		code,
	)
}
