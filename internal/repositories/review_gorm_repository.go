package repositories

import (
	"context"

	"github.com/go-faster/errors"
	"gorm.io/gorm"

	"madamchoice/internal/models"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

// Create appends a review.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return errors.Wrap(err, "create review")
	}
	return nil
}

// ListNewestFirst returns every review, most recent first. Rows sharing a
// timestamp fall back to insertion order, newest first.
func (r *GORMReviewRepository) ListNewestFirst(ctx context.Context) ([]models.Review, error) {
	reviews := make([]models.Review, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&reviews).Error; err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}
	return reviews, nil
}
