// Package mailer sends plain-text email over SMTP.
package mailer

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// ErrDisabled is returned by a mailer built without SMTP credentials.
var ErrDisabled = errors.New("mailer is not configured")

// Message is a single plain-text email.
type Message struct {
	Subject string
	From    string
	To      string
	ReplyTo string
	Body    string
}

// Config holds SMTP connection details.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// dialer is satisfied by *gomail.Dialer.
type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer sends messages through an SMTP relay.
type SMTPMailer struct {
	dialer dialer
	logger *zap.Logger
}

// New creates an SMTPMailer for the given relay.
func New(cfg Config, logger *zap.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

// Send delivers msg. The SMTP exchange itself is not cancellable; ctx is only
// checked before dialing.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if msg.From == "" || msg.To == "" {
		return errors.New("message needs both sender and recipient")
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", msg.From)
	gm.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		gm.SetHeader("Reply-To", msg.ReplyTo)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		m.logger.Warn("Failed to send email", zap.String("subject", msg.Subject), zap.Error(err))
		return errors.Wrap(err, "send email")
	}
	m.logger.Debug("Email sent", zap.String("subject", msg.Subject), zap.String("to", msg.To))
	return nil
}

// Disabled is a mailer that refuses every message.
type Disabled struct{}

// Send always returns ErrDisabled.
func (Disabled) Send(context.Context, Message) error {
	return ErrDisabled
}
