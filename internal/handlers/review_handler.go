package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"madamchoice/internal/services"
)

// ReviewHandler handles HTTP requests for the review board.
type ReviewHandler struct {
	service *services.ReviewService
	logger  *zap.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{service: service, logger: logger}
}

// RegisterRoutes registers the review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/reviews", h.HandleAddReview)
	router.Get("/reviews", h.HandleListReviews)
}

// AddReviewRequest accepts both form-encoded and JSON bodies.
type AddReviewRequest struct {
	Name   string `json:"name" form:"name"`
	Rating int    `json:"rating" form:"rating"`
	Text   string `json:"text" form:"text"`
}

// HandleAddReview stores a review as submitted.
func (h *ReviewHandler) HandleAddReview(c *fiber.Ctx) error {
	var req AddReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}

	review, err := h.service.AddReview(c.UserContext(), req.Name, req.Rating, req.Text)
	if err != nil {
		return respondError(c, h.logger, "Could not save review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleListReviews returns every review, newest first.
func (h *ReviewHandler) HandleListReviews(c *fiber.Ctx) error {
	reviews, err := h.service.ListReviews(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, "Could not load reviews", err)
	}
	return c.JSON(reviews)
}
