package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rishabhcod/event-registration-system2/errors"
	"github.com/rishabhcod/event-registration-system2/middleware"
	"github.com/rishabhcod/event-registration-system2/model"
	"github.com/rishabhcod/event-registration-system2/service"
)

var eventDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type createEventRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	Location    string      `json:"location"`
	TotalSeats  interface{} `json:"totalSeats"`
}

func (h *Handlers) GetEvents(c *fiber.Ctx) error {
	events, err := h.admin.ListEvents(c.UserContext())
	if err != nil {
		return errors.RaiseServiceError(c, h.log, err, "Failed to fetch events")
	}
	return c.JSON(events)
}

func (h *Handlers) GetEvent(c *fiber.Ctx) error {
	event, err := h.admin.GetEvent(c.UserContext(), c.Params("id"))
	if err != nil {
		return errors.RaiseServiceError(c, h.log, err, "Failed to fetch event")
	}
	return c.JSON(event)
}

func (h *Handlers) CreateEvent(c *fiber.Ctx) error {
	req := new(createEventRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, fmt.Sprintf("unacceptable event parameters: %v", err))
	}

	date, err := parseEventDate(req.Date)
	if err != nil {
		return errors.RaiseBadRequestError(c, err.Error())
	}

	event, err := h.admin.CreateEvent(c.UserContext(), model.NewEvent{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		Location:    req.Location,
		TotalSeats:  parseSeats(req.TotalSeats),
	})
	if err != nil {
		return errors.RaiseServiceError(c, h.log, err, "Failed to create event")
	}
	h.log.Debug("Event created by admin", "admin", c.Locals(middleware.AdminKey), "eventId", event.Id.Hex())

	return c.JSON(fiber.Map{"message": "Event created", "event": event})
}

func (h *Handlers) Register(c *fiber.Ctx) error {
	req := new(service.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.RaiseBadRequestError(c, "name and email required")
	}

	receipt, err := h.registrations.Register(c.UserContext(), c.Params("id"), *req)
	if err != nil {
		return errors.RaiseServiceError(c, h.log, err, "Registration failed")
	}

	return c.JSON(fiber.Map{
		"message":      "Registered",
		"ticketId":     receipt.TicketId,
		"event":        receipt.Event,
		"registration": receipt.Registration,
	})
}

// parseEventDate returns nil for a blank date; the event is stored undated.
func parseEventDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range eventDateLayouts {
		if date, err := time.Parse(layout, raw); err == nil {
			date = date.UTC()
			return &date, nil
		}
	}
	return nil, fmt.Errorf("invalid event date %q", raw)
}

// parseSeats accepts a JSON number or numeric string; anything else counts as zero seats.
func parseSeats(raw interface{}) int {
	switch v := raw.(type) {
	case float64:
		if v <= 0 {
			return 0
		}
		if v >= math.MaxInt32 {
			return math.MaxInt32
		}
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
