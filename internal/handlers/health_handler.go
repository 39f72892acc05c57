package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// HealthHandler reports whether storage is reachable.
type HealthHandler struct {
	ping   func(ctx context.Context) error
	logger *zap.Logger
}

// NewHealthHandler creates a HealthHandler using ping as the storage check.
func NewHealthHandler(ping func(ctx context.Context) error, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{ping: ping, logger: logger}
}

// RegisterRoutes registers GET /health.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

// HandleHealth answers 200 when the storage ping succeeds within two seconds.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
