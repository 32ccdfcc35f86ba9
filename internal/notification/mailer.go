package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/eventhub/eventhub-api/internal/config"
)

// Mailer sends a single plain-text message. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers mail through a plain SMTP relay. When disabled in config
// it silently drops messages, which keeps development setups mail-server free.
type SMTPMailer struct {
	conf *config.SMTPConfig
}

func NewSMTPMailer(conf *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		conf: conf,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	if !m.conf.Enabled {
		return nil
	}

	msg := strings.Join([]string{
		"From: " + m.conf.Sender,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	addr := m.conf.Host + ":" + m.conf.Port
	var auth smtp.Auth
	if m.conf.Username != "" {
		auth = smtp.PlainAuth("", m.conf.Username, m.conf.Password, m.conf.Host)
	}

	if err := smtp.SendMail(addr, auth, m.conf.Sender, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp.SendMail -> %w", err)
	}

	return nil
}
