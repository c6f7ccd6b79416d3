package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rishabhcod/event-registration-system2/database"
	"github.com/rishabhcod/event-registration-system2/model"
)

type RegisterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type RegistrationService struct {
	store    database.EventStore
	log      *slog.Logger
	ticketId func() string
	now      func() time.Time
}

func NewRegistrationService(store database.EventStore, log *slog.Logger) *RegistrationService {
	return &RegistrationService{
		store:    store,
		log:      log,
		ticketId: NewTicketId,
		now:      func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// Register takes one seat of the event and records the attendee in a single conditional
// store update.
func (s *RegistrationService) Register(ctx context.Context, eventId string, req RegisterRequest) (model.Receipt, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Name == "" || req.Email == "" {
		return model.Receipt{}, validationError("name and email required")
	}

	reg := model.Registration{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		TicketId:  s.ticketId(),
		CreatedAt: s.now(),
	}

	event, err := s.store.ConditionalRegister(ctx, eventId, reg)
	if errors.Is(err, database.ErrPreconditionFailed) {
		return model.Receipt{}, s.classifyFailure(ctx, eventId, reg.TicketId)
	}
	if err != nil {
		return model.Receipt{}, fmt.Errorf("register for event %v: %w", eventId, err)
	}

	if stored, ok := event.FindRegistration(reg.TicketId); ok {
		reg = stored
	}

	s.log.Info("Registered attendee", "eventId", eventId, "ticketId", reg.TicketId,
		"availableSeats", event.AvailableSeats)

	return model.Receipt{
		TicketId:     reg.TicketId,
		Event:        event.Summary(),
		Registration: reg,
	}, nil
}

// classifyFailure picks the error reported for a failed conditional register. It runs
// after the update was already rejected and only chooses a message; the event may have
// changed in between, so the answer is a best-effort diagnosis.
func (s *RegistrationService) classifyFailure(ctx context.Context, eventId, ticketId string) error {
	event, err := s.store.FindEventById(ctx, eventId)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return ErrEventNotFound
	case err != nil:
		s.log.Warn("Cannot classify rejected registration", "eventId", eventId, "err", err)
		return ErrEventUnavailable
	case event.AvailableSeats <= 0:
		return ErrNoSeatsAvailable
	}
	if _, taken := event.FindRegistration(ticketId); taken {
		s.log.Warn("Ticket id collision", "eventId", eventId, "ticketId", ticketId)
	}
	// a ticket id collision, or seats freed after the rejected update
	return ErrEventUnavailable
}
