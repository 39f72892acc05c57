package repositories

import (
	"context"
	"sync"

	"github.com/go-faster/errors"

	"madamchoice/internal/models"
)

// InMemoryOrderRepository is a map-backed implementation of OrderRepository.
type InMemoryOrderRepository struct {
	orders map[string]models.Order
	nextID uint
	mu     sync.RWMutex
}

// NewInMemoryOrderRepository creates a new instance of InMemoryOrderRepository.
func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create stores the order and assigns the next sequential internal ID.
func (r *InMemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.OrderID]; ok {
		return errors.Wrapf(ErrDuplicate, "order %s", order.OrderID)
	}
	r.nextID++
	order.ID = r.nextID
	r.orders[order.OrderID] = *order
	return nil
}

// GetByOrderID returns a copy of the stored order.
func (r *InMemoryOrderRepository) GetByOrderID(_ context.Context, orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "order %s", orderID)
	}
	return &order, nil
}

// Len returns the number of stored orders.
func (r *InMemoryOrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
