package services

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"madamchoice/pkg/mailer"
)

// Mailer sends a single email message.
type Mailer interface {
	Send(ctx context.Context, msg mailer.Message) error
}

// ContactMessage is a visitor's contact form submission.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// ContactService forwards contact form submissions to the shop inbox.
type ContactService struct {
	mailer Mailer
	from   string
	to     string
}

// NewContactService creates a ContactService sending from one address to the shop inbox.
func NewContactService(m Mailer, from, to string) *ContactService {
	return &ContactService{mailer: m, from: from, to: to}
}

// Send emails the message. Dispatch failures are reported as ErrDependencyFailure.
func (s *ContactService) Send(ctx context.Context, msg ContactMessage) error {
	err := s.mailer.Send(ctx, mailer.Message{
		Subject: fmt.Sprintf("New contact message from %s", msg.Name),
		From:    s.from,
		To:      s.to,
		ReplyTo: msg.Email,
		Body:    fmt.Sprintf("Name: %s\nEmail: %s\n\n%s\n", msg.Name, msg.Email, msg.Message),
	})
	if err != nil {
		return errors.Wrapf(ErrDependencyFailure, "send contact email: %v", err)
	}
	return nil
}
