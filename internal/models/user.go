package models

import "time"

// User represents a registered customer.
type User struct {
	ID           uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // never serialized
	CreatedAt    time.Time `json:"created_at"`
}
