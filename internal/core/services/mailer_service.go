package services

import (
	"fmt"

	"yorkhub/internal/config"
	"yorkhub/internal/core/domain"

	"gopkg.in/gomail.v2"
)

// Mailer delivers out-of-band notifications. Implementations must
// report delivery failures; callers decide whether they are fatal.
type Mailer interface {
	Send(to, subject, body string, html bool) error
}

// SMTPMailer sends mail through a configured SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

// Send delivers a single message. Failures are wrapped as
// domain.ErrDeliveryFailure so the boundary can report them distinctly.
func (m *SMTPMailer) Send(to, subject, body string, html bool) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if html {
		msg.SetBody("text/html", body)
	} else {
		msg.SetBody("text/plain", body)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailure, err)
	}
	return nil
}
