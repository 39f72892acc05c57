package repositories

import (
	"context"

	"madamchoice/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create inserts the user unless the email is already registered, in
	// which case it returns ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
