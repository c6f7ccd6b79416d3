package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/rishabhcod/event-registration-system2/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, adminOnly fiber.Handler) {
	api := app.Group("/api", logger.New())
	api.Get("/health", h.Health)

	//Events
	events := api.Group("/events")
	events.Get("/", h.GetEvents)
	events.Get("/:id", h.GetEvent)
	events.Post("/", adminOnly, h.CreateEvent)
	events.Post("/:id/register", h.Register)

	//Admin
	admin := api.Group("/admin")
	admin.Post("/login", h.Login)
	admin.Get("/registrations", adminOnly, h.GetRegistrations)
	admin.Delete("/registrations/:ticketId", adminOnly, h.DeleteRegistration)
}
