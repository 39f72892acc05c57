package services

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"madamchoice/internal/models"
	"madamchoice/internal/repositories"
	"madamchoice/pkg/rabbitmq"
)

// OrderEventPublisher publishes order lifecycle events.
type OrderEventPublisher interface {
	PublishOrderCreated(ctx context.Context, event rabbitmq.OrderCreated) error
}

// CreateOrderInput carries the customer-supplied fields of a new order.
// ExpectedAmount is taken as given; it is not recomputed from a catalog.
type CreateOrderInput struct {
	ProductName     string
	ExpectedAmount  int64
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	PaymentMethod   string
	TransactionID   string
}

// OrderService records purchase attempts and looks them up by order ID.
type OrderService struct {
	orderRepo repositories.OrderRepository
	events    OrderEventPublisher // optional
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService. events may be nil, in which
// case no order events are published.
func NewOrderService(orderRepo repositories.OrderRepository, events OrderEventPublisher, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		events:    events,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateOrder stores a new pending order under a fresh random order ID.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	paymentMethod := strings.TrimSpace(in.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = models.DefaultPaymentMethod
	}

	order := &models.Order{
		OrderID:         uuid.NewString(),
		ProductName:     in.ProductName,
		ExpectedAmount:  in.ExpectedAmount,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		CustomerAddress: in.CustomerAddress,
		PaymentMethod:   paymentMethod,
		TransactionID:   in.TransactionID,
		Status:          models.OrderStatusPending,
		CreatedAt:       s.now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	s.publishCreated(ctx, order)
	return order, nil
}

// GetOrder returns the order with the given external order ID.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "order %s", orderID)
		}
		return nil, errors.Wrap(err, "get order")
	}
	return order, nil
}

// publishCreated emits an order.created event. Failures are logged only: the
// order is already stored.
func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	if s.events == nil {
		return
	}
	event := rabbitmq.OrderCreated{
		OrderID:        order.OrderID,
		ProductName:    order.ProductName,
		ExpectedAmount: order.ExpectedAmount,
		CustomerName:   order.CustomerName,
		CustomerPhone:  order.CustomerPhone,
		Status:         string(order.Status),
		CreatedAt:      order.CreatedAt,
	}
	if err := s.events.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Warn("Failed to publish order created event",
			zap.String("order_id", order.OrderID),
			zap.Error(err),
		)
	}
}

func (in CreateOrderInput) validate() error {
	switch {
	case strings.TrimSpace(in.ProductName) == "":
		return validationError("product_name is required")
	case strings.TrimSpace(in.CustomerName) == "":
		return validationError("customer_name is required")
	case strings.TrimSpace(in.CustomerPhone) == "":
		return validationError("customer_phone is required")
	case in.ExpectedAmount < 0:
		return validationError("expected_amount must not be negative")
	}
	return nil
}
