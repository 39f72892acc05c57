package models

import "time"

// Payment is reserved schema for a future gateway integration. The table is
// migrated but nothing reads or writes it yet.
type Payment struct {
	ID               uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID          string    `json:"order_id" gorm:"index;type:varchar(36)"`
	Gateway          string    `json:"gateway"`
	GatewayOrderID   *string   `json:"gateway_order_id"`
	GatewayPaymentID *string   `json:"gateway_payment_id"`
	Amount           int64     `json:"amount"`
	Currency         string    `json:"currency" gorm:"type:varchar(3);default:INR"`
	Status           string    `json:"status" gorm:"type:varchar(16);default:created"` // created, success, failed
	SignatureValid   bool      `json:"signature_valid"`
	CreatedAt        time.Time `json:"created_at"`
}
