package handlers

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"madamchoice/internal/middleware"
	"madamchoice/internal/services"
)

// statusFor maps the service error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrDependencyFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes a {"message", "error"} payload. Internal failures are
// logged with the request ID and their details are not echoed to the client.
func respondError(c *fiber.Ctx, logger *zap.Logger, message string, err error) error {
	status := statusFor(err)
	body := fiber.Map{"message": message, "error": err.Error()}

	if status >= fiber.StatusInternalServerError {
		logger.Error(message,
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err),
		)
	}
	if status == fiber.StatusInternalServerError {
		body["error"] = "internal error"
	}
	return c.Status(status).JSON(body)
}

// badRequest answers a body that could not be parsed.
func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request body",
		"error":   err.Error(),
	})
}

// validationFailed answers a struct that failed validation with one entry per field.
func validationFailed(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  validationMessages(err),
	})
}

func validationMessages(err error) map[string]string {
	messages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		messages["request"] = err.Error()
		return messages
	}
	for _, e := range validationErrors {
		messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return messages
}
