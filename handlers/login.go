package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rishabhcod/event-registration-system2/errors"
)

func (h *Handlers) Login(c *fiber.Ctx) error {
	type Credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var creds = new(Credentials)
	if err := c.BodyParser(creds); err != nil {
		return errors.RaiseBadRequestError(c, "username & password required")
	}

	token, err := h.auth.Login(creds.Username, creds.Password)
	if err != nil {
		return errors.RaiseServiceError(c, h.log, err, "Login failed")
	}

	h.log.Info("Admin logged in", "username", creds.Username, "ip", c.IP())
	return c.JSON(fiber.Map{"status": "success", "message": "Success login", "token": token})
}
