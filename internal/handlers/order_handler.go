package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"madamchoice/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: newValidator(),
		logger:   logger,
	}
}

// RegisterRoutes registers the order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/:order_id", h.HandleGetOrder)
}

// CreateOrderRequest is the body of POST /orders. Optional fields may be
// omitted; payment_method then defaults to the manual transfer channel.
type CreateOrderRequest struct {
	ProductName     string `json:"product_name" validate:"required,max=1000"`
	ExpectedAmount  *int64 `json:"expected_amount" validate:"required,gte=0"`
	CustomerName    string `json:"customer_name" validate:"required,max=100"`
	CustomerPhone   string `json:"customer_phone" validate:"required,max=20"`
	CustomerAddress string `json:"customer_address" validate:"omitempty,max=500"`
	PaymentMethod   string `json:"payment_method" validate:"omitempty,max=50"`
	TransactionID   string `json:"transaction_id" validate:"omitempty,max=100"`
}

// CreateOrderResponse is returned after an order is recorded.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// HandleCreateOrder records a new pending order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	order, err := h.service.CreateOrder(c.UserContext(), services.CreateOrderInput{
		ProductName:     req.ProductName,
		ExpectedAmount:  *req.ExpectedAmount,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		PaymentMethod:   req.PaymentMethod,
		TransactionID:   req.TransactionID,
	})
	if err != nil {
		return respondError(c, h.logger, "Could not create order", err)
	}

	return c.Status(fiber.StatusCreated).JSON(CreateOrderResponse{
		OrderID: order.OrderID,
		Status:  string(order.Status),
	})
}

// HandleGetOrder returns the full order record for an order ID.
func (h *OrderHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), c.Params("order_id"))
	if err != nil {
		return respondError(c, h.logger, "Order not found", err)
	}
	return c.JSON(order)
}
