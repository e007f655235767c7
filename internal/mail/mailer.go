// Package mail sends confirmation and digest messages over SMTP.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer is the messaging channel: plain text or rich HTML, at-most-once.
type Mailer interface {
	SendPlain(to, subject, body string) error
	SendRich(to, subject, htmlBody string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		from:   config.From,
	}
}

func (m *SMTPMailer) SendPlain(to, subject, body string) error {
	return m.send(to, subject, "text/plain", body)
}

func (m *SMTPMailer) SendRich(to, subject, htmlBody string) error {
	return m.send(to, subject, "text/html", htmlBody)
}

func (m *SMTPMailer) send(to, subject, contentType, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody(contentType, body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send error: %w", err)
	}
	return nil
}
