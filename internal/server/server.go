package server

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"madamchoice/internal/handlers"
	"madamchoice/internal/middleware"
	"madamchoice/internal/services"
	"madamchoice/web"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Orders  *services.OrderService
	Reviews *services.ReviewService
	Auth    *services.AuthService
	Contact *services.ContactService
	Ping    func(ctx context.Context) error
	Logger  *zap.Logger
}

// New builds the fiber app with every route registered.
func New(deps Deps) *fiber.App {
	engine := html.NewFileSystem(web.Views(), ".html")

	app := fiber.New(fiber.Config{
		Views:                 engine,
		ErrorHandler:          errorHandler(deps.Logger),
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestLogger(deps.Logger))
	app.Use(recover.New())
	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static()}))

	handlers.NewHealthHandler(deps.Ping, deps.Logger).RegisterRoutes(app)
	handlers.NewPageHandler(deps.Contact, deps.Logger).RegisterRoutes(app)
	handlers.NewOrderHandler(deps.Orders, deps.Logger).RegisterRoutes(app)
	handlers.NewCouponHandler().RegisterRoutes(app)
	handlers.NewReviewHandler(deps.Reviews, deps.Logger).RegisterRoutes(app)
	handlers.NewAuthHandler(deps.Auth, deps.Logger).RegisterRoutes(app)

	return app
}

// errorHandler answers errors that escape a handler (unknown routes, panics
// caught by recover) with the same JSON shape the handlers use.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		} else {
			logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{"message": message})
	}
}
