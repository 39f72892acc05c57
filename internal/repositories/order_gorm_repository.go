package repositories

import (
	"context"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"madamchoice/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create appends a new order row. The storage layer assigns the internal ID.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errors.Wrapf(ErrDuplicate, "order %s", order.OrderID)
		}
		return errors.Wrap(err, "create order")
	}
	return nil
}

// GetByOrderID retrieves an order by its external order ID.
func (r *GORMOrderRepository) GetByOrderID(ctx context.Context, orderID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(ErrNotFound, "order %s", orderID)
		}
		return nil, errors.Wrapf(err, "get order %s", orderID)
	}
	return &order, nil
}
