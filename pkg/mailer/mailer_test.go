package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type recordingDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func TestSMTPMailer_Send(t *testing.T) {
	d := &recordingDialer{}
	m := &SMTPMailer{dialer: d, logger: zap.NewNop()}

	err := m.Send(context.Background(), Message{
		Subject: "Hello",
		From:    "shop@example.com",
		To:      "owner@example.com",
		ReplyTo: "visitor@example.com",
		Body:    "hi there",
	})
	require.NoError(t, err)
	require.Len(t, d.sent, 1)

	msg := d.sent[0]
	assert.Equal(t, []string{"shop@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"owner@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"visitor@example.com"}, msg.GetHeader("Reply-To"))
	assert.Equal(t, []string{"Hello"}, msg.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hi there")
}

func TestSMTPMailer_SendError(t *testing.T) {
	m := &SMTPMailer{dialer: &recordingDialer{err: errors.New("connection refused")}, logger: zap.NewNop()}

	err := m.Send(context.Background(), Message{From: "a@example.com", To: "b@example.com"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestSMTPMailer_CancelledContext(t *testing.T) {
	d := &recordingDialer{}
	m := &SMTPMailer{dialer: d, logger: zap.NewNop()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, Message{From: "a@example.com", To: "b@example.com"}), context.Canceled)
	assert.Empty(t, d.sent)
}

func TestSMTPMailer_RequiresAddresses(t *testing.T) {
	m := &SMTPMailer{dialer: &recordingDialer{}, logger: zap.NewNop()}
	assert.Error(t, m.Send(context.Background(), Message{To: "b@example.com"}))
}

func TestDisabled(t *testing.T) {
	assert.ErrorIs(t, Disabled{}.Send(context.Background(), Message{}), ErrDisabled)
}
