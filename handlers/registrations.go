package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rishabhcod/event-registration-system2/errors"
	"github.com/rishabhcod/event-registration-system2/middleware"
)

func (h *Handlers) GetRegistrations(c *fiber.Ctx) error {
	records, err := h.admin.ListAllRegistrations(c.UserContext())
	if err != nil {
		return errors.RaiseServiceError(c, h.log, err, "Failed to fetch registrations")
	}
	return c.JSON(records)
}

func (h *Handlers) DeleteRegistration(c *fiber.Ctx) error {
	h.log.Debug("Deleting registration", "admin", c.Locals(middleware.AdminKey), "ticketId", c.Params("ticketId"))
	if err := h.admin.DeleteRegistration(c.UserContext(), c.Params("ticketId")); err != nil {
		return errors.RaiseServiceError(c, h.log, err, "Failed to delete registration")
	}
	return c.JSON(fiber.Map{"message": "Deleted registration and restored seat"})
}
