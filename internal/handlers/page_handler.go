package handlers

import (
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"madamchoice/internal/services"
)

// Layout wraps every page template.
const Layout = "layouts/main"

// pages maps a path to the template rendered for it.
var pages = map[string]string{
	"/":                 "index",
	"/products":         "products",
	"/about":            "about",
	"/contact":          "contact",
	"/privacy-policy":   "privacy-policy",
	"/terms-of-service": "terms-of-service",
	"/pay":              "pay",
}

// PageHandler renders the storefront pages and the contact form.
type PageHandler struct {
	contact  *services.ContactService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(contact *services.ContactService, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		contact:  contact,
		validate: newValidator(),
		logger:   logger,
	}
}

// RegisterRoutes registers every page route and the contact form.
func (h *PageHandler) RegisterRoutes(router fiber.Router) {
	for path, name := range pages {
		router.Get(path, h.render(name))
	}
	router.Post("/contact", h.HandleContact)
}

func (h *PageHandler) render(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render(name, fiber.Map{"Page": name}, Layout)
	}
}

// ContactForm is the contact page submission.
type ContactForm struct {
	Name    string `json:"name" form:"name" validate:"required,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

// HandleContact emails the submission to the shop and re-renders the contact
// page with either a success flag or an error message.
func (h *PageHandler) HandleContact(c *fiber.Ctx) error {
	var form ContactForm
	if err := c.BodyParser(&form); err != nil {
		return h.renderContactError(c, fiber.StatusBadRequest, "Please fill in every field.", form)
	}
	if err := h.validate.Struct(form); err != nil {
		return h.renderContactError(c, fiber.StatusBadRequest, "Please fill in every field with a valid email address.", form)
	}

	if err := h.contact.Send(c.UserContext(), services.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Message: form.Message,
	}); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, services.ErrDependencyFailure) {
			status = fiber.StatusBadGateway
		}
		h.logger.Warn("Contact message not delivered", zap.Error(err))
		return h.renderContactError(c, status, "Sorry, we could not send your message. Please try again later.", form)
	}

	return c.Render("contact", fiber.Map{"Page": "contact", "Success": true}, Layout)
}

func (h *PageHandler) renderContactError(c *fiber.Ctx, status int, message string, form ContactForm) error {
	return c.Status(status).Render("contact", fiber.Map{
		"Page":  "contact",
		"Error": message,
		"Form":  form,
	}, Layout)
}
