package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"

	"madamchoice/pkg/mailer"
	"madamchoice/pkg/rabbitmq"
)

// OrderNotifier turns order.created events into an email to the shop inbox.
type OrderNotifier struct {
	mailer Mailer
	from   string
	to     string
}

// NewOrderNotifier creates an OrderNotifier.
func NewOrderNotifier(m Mailer, from, to string) *OrderNotifier {
	return &OrderNotifier{mailer: m, from: from, to: to}
}

// HandleOrderCreated decodes an order.created payload and emails the shop.
// Undecodable payloads return rabbitmq.ErrMalformedMessage.
func (n *OrderNotifier) HandleOrderCreated(ctx context.Context, body []byte) error {
	var event rabbitmq.OrderCreated
	if err := json.Unmarshal(body, &event); err != nil {
		return errors.Wrapf(rabbitmq.ErrMalformedMessage, "decode order event: %v", err)
	}
	if event.OrderID == "" {
		return errors.Wrap(rabbitmq.ErrMalformedMessage, "order event without order_id")
	}

	err := n.mailer.Send(ctx, mailer.Message{
		Subject: fmt.Sprintf("New order %s", event.OrderID),
		From:    n.from,
		To:      n.to,
		Body: fmt.Sprintf(
			"Order: %s\nProduct: %s\nAmount: %d\nCustomer: %s (%s)\nStatus: %s\n",
			event.OrderID, event.ProductName, event.ExpectedAmount,
			event.CustomerName, event.CustomerPhone, event.Status,
		),
	})
	if err != nil {
		return errors.Wrapf(ErrDependencyFailure, "send order notification: %v", err)
	}
	return nil
}
