package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/rishabhcod/event-registration-system2/service"
)

type Handlers struct {
	registrations *service.RegistrationService
	admin         *service.AdminService
	auth          *service.AuthService
	log           *slog.Logger
}

func New(registrations *service.RegistrationService, admin *service.AdminService,
	auth *service.AuthService, log *slog.Logger) *Handlers {
	return &Handlers{registrations: registrations, admin: admin, auth: auth, log: log}
}

func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}
