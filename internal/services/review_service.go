package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"madamchoice/internal/models"
	"madamchoice/internal/repositories"
)

// ReviewService is the append-only review board.
type ReviewService struct {
	repo repositories.ReviewRepository
	now  func() time.Time
}

// NewReviewService creates a new ReviewService.
func NewReviewService(repo repositories.ReviewRepository) *ReviewService {
	return &ReviewService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// AddReview stores a review. The rating is recorded as given.
func (s *ReviewService) AddReview(ctx context.Context, name string, rating int, text string) (*models.Review, error) {
	review := &models.Review{
		Name:      name,
		Rating:    rating,
		Text:      text,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "add review")
	}
	return review, nil
}

// ListReviews returns every review, most recent first.
func (s *ReviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list reviews")
	}
	return reviews, nil
}
