package repositories

import (
	"context"

	"madamchoice/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are looked up by their external order ID only.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Order, error)
}
