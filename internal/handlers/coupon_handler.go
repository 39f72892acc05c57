package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"madamchoice/internal/coupon"
)

// CouponHandler prices a cart total against a coupon code.
type CouponHandler struct {
	validate *validator.Validate
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler() *CouponHandler {
	return &CouponHandler{validate: newValidator()}
}

// RegisterRoutes registers the coupon route.
func (h *CouponHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/apply-coupon", h.HandleApplyCoupon)
}

// ApplyCouponRequest is the body of POST /apply-coupon.
type ApplyCouponRequest struct {
	TotalAmount *decimal.Decimal `json:"total_amount" validate:"required"`
	Coupon      string           `json:"coupon"`
}

// ApplyCouponResponse carries both totals as JSON numbers.
type ApplyCouponResponse struct {
	OriginalTotal   float64 `json:"original_total"`
	DiscountPercent int64   `json:"discount_percent"`
	DiscountedTotal float64 `json:"discounted_total"`
}

// HandleApplyCoupon returns the discount tier and discounted total.
func (h *CouponHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	var req ApplyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}
	if err := coupon.ValidateTotal(*req.TotalAmount); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  map[string]string{"total_amount": "total_amount: " + err.Error()},
		})
	}

	result := coupon.Apply(*req.TotalAmount, req.Coupon)

	return c.JSON(ApplyCouponResponse{
		OriginalTotal:   result.OriginalTotal.InexactFloat64(),
		DiscountPercent: result.DiscountPercent,
		DiscountedTotal: result.DiscountedTotal.InexactFloat64(),
	})
}
