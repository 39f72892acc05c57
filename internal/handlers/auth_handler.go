package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"madamchoice/internal/services"
)

// AuthHandler handles signup and login. Neither issues a session or token.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    newValidator(),
		logger:      logger,
	}
}

// RegisterRoutes registers the signup and login routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/signup", h.HandleSignup)
	router.Post("/login", h.HandleLogin)
}

// SignupRequest represents the request body for signup.
type SignupRequest struct {
	Name     string `json:"name" form:"name" validate:"required,max=100"`
	Email    string `json:"email" form:"email" validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// HandleSignup registers a new user.
func (h *AuthHandler) HandleSignup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.authService.CreateUser(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, h.logger, "Registration failed", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// HandleLogin checks credentials and returns the user on success.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	user, err := h.authService.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, h.logger, "Authentication failed", err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
	})
}
