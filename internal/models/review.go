package models

import "time"

// Review is a customer review. Reviews are never updated or deleted.
type Review struct {
	ID        uint      `json:"-" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
