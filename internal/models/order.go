package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// DefaultPaymentMethod is recorded when the customer does not name a payment channel.
const DefaultPaymentMethod = "manual_upi"

// Order represents a recorded purchase attempt.
//
// Only pending is ever written by the application. The other statuses, together
// with PaidAt, are set by hand against the database.
type Order struct {
	ID              uint        `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID         string      `json:"order_id" gorm:"uniqueIndex;type:varchar(36);not null"`
	ProductName     string      `json:"product_name" gorm:"not null"`
	ExpectedAmount  int64       `json:"expected_amount" gorm:"not null"` // whole rupees, trusted client input
	CustomerName    string      `json:"customer_name" gorm:"not null"`
	CustomerPhone   string      `json:"customer_phone" gorm:"not null"`
	CustomerAddress string      `json:"customer_address"`
	PaymentMethod   string      `json:"payment_method" gorm:"not null"`
	TransactionID   string      `json:"transaction_id"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(16);not null;default:pending"`
	CreatedAt       time.Time   `json:"created_at"`
	PaidAt          *time.Time  `json:"paid_at"`
}
