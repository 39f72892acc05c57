// Package rabbitmq publishes and consumes order events on a durable queue.
package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-faster/errors"
	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// DefaultQueue is the durable queue carrying order events.
const DefaultQueue = "order_queue"

// ErrMalformedMessage marks a delivery that can never be processed. Such
// deliveries are rejected without requeue.
var ErrMalformedMessage = errors.New("malformed message")

// OrderCreated is the payload published after an order is recorded.
type OrderCreated struct {
	OrderID        string    `json:"order_id"`
	ProductName    string    `json:"product_name"`
	ExpectedAmount int64     `json:"expected_amount"`
	CustomerName   string    `json:"customer_name"`
	CustomerPhone  string    `json:"customer_phone"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// channel is the subset of *amqp.Channel the client uses.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel channel
	queue   string
	logger  *zap.Logger
	mu      sync.Mutex // guards publishing on the shared channel
}

// NewClient connects to RabbitMQ, opens a channel and declares the queue.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "open channel")
	}

	_, err = ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errors.Wrapf(err, "declare %s", cfg.Queue)
	}

	logger.Info("RabbitMQ client connected", zap.String("queue", cfg.Queue))

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   cfg.Queue,
		logger:  logger,
	}, nil
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "close channel"))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, errors.Wrap(err, "close connection"))
		}
	}
	if len(errs) > 0 {
		return errors.Errorf("close RabbitMQ client: %v", errs)
	}
	return nil
}

// PublishOrderCreated publishes a persistent JSON order.created event.
func (c *Client) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal order event")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         "order.created",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return errors.Wrap(err, "publish order event")
	}

	c.logger.Debug("Published order event", zap.String("order_id", event.OrderID))
	return nil
}

// Handler processes one message body.
type Handler func(ctx context.Context, body []byte) error

// ConsumeOrderEvents registers a consumer on the queue and processes
// deliveries until ctx is done or the channel closes. Deliveries are acked on
// success, rejected when the handler reports ErrMalformedMessage, and
// otherwise requeued once.
func (c *Client) ConsumeOrderEvents(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return errors.Wrap(err, "register consumer")
	}

	c.logger.Info("Waiting for order events", zap.String("queue", c.queue))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			c.handleDelivery(ctx, msg, handler)
		}
	}
}

func (c *Client) handleDelivery(ctx context.Context, msg amqp.Delivery, handler Handler) {
	err := handler(ctx, msg.Body)
	switch {
	case err == nil:
		if ackErr := msg.Ack(false); ackErr != nil {
			c.logger.Error("Failed to ack message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(ackErr))
		}
	case errors.Is(err, ErrMalformedMessage):
		c.logger.Warn("Rejecting malformed message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(err))
		if rejErr := msg.Reject(false); rejErr != nil {
			c.logger.Error("Failed to reject message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(rejErr))
		}
	default:
		requeue := !msg.Redelivered
		c.logger.Warn("Failed to process message",
			zap.Uint64("tag", msg.DeliveryTag),
			zap.Bool("requeue", requeue),
			zap.Error(err),
		)
		if nackErr := msg.Nack(false, requeue); nackErr != nil {
			c.logger.Error("Failed to nack message", zap.Uint64("tag", msg.DeliveryTag), zap.Error(nackErr))
		}
	}
}
