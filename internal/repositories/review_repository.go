package repositories

import (
	"context"

	"madamchoice/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListNewestFirst(ctx context.Context) ([]models.Review, error)
}
