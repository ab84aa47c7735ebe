package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// NewApp wires the middleware stack and every route onto a fresh fiber app.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Healthbook",
		DisableStartupMessage: true,
		ErrorHandler:          handler.errorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: contextRequestIDKey,
	}))
	app.Use(handler.RequestLogger)

	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
