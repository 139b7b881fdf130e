package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer delivers a plain-text copy of a notification.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// NopMailer is used when SMTP is not configured.
type NopMailer struct{}

func (NopMailer) Send(to, subject, body string) error { return nil }

// NewMailer returns an SMTP mailer, or a no-op one when host is empty.
func NewMailer(host string, port int, username, password, from string) Mailer {
	if host == "" {
		return NopMailer{}
	}
	return NewSMTPMailer(host, port, username, password, from)
}
