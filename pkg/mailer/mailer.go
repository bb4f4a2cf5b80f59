package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"symposium-registration/pkg/utils"
)

// Mailer sends fire-and-forget notification email. Callers log failures and
// never retry.
type Mailer interface {
	Send(to []string, subject, body string) error
}

type smtpMailer struct {
	config utils.EmailConfig
}

func NewSMTPMailer(config utils.EmailConfig) Mailer {
	return &smtpMailer{config: config}
}

func (m *smtpMailer) Send(to []string, subject, body string) error {
	if m.config.Host == "" {
		return fmt.Errorf("smtp host not configured")
	}

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	var auth smtp.Auth
	if m.config.User != "" {
		auth = smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	}

	msg := strings.Join([]string{
		"From: " + m.config.From,
		"To: " + strings.Join(to, ", "),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, m.config.From, to, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", strings.Join(to, ","), err)
	}

	return nil
}
