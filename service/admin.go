package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rishabhcod/event-registration-system2/database"
	"github.com/rishabhcod/event-registration-system2/model"
)

type AdminService struct {
	store database.EventStore
	log   *slog.Logger
}

func NewAdminService(store database.EventStore, log *slog.Logger) *AdminService {
	return &AdminService{store: store, log: log}
}

func (s *AdminService) CreateEvent(ctx context.Context, event model.NewEvent) (model.Event, error) {
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return model.Event{}, validationError("title required")
	}
	if event.TotalSeats < 0 {
		event.TotalSeats = 0
	}

	created, err := s.store.CreateEvent(ctx, event)
	if err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	s.log.Info("Created event", "eventId", created.Id.Hex(), "totalSeats", created.TotalSeats)
	return created, nil
}

func (s *AdminService) ListEvents(ctx context.Context) ([]model.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *AdminService) GetEvent(ctx context.Context, eventId string) (model.Event, error) {
	event, err := s.store.FindEventById(ctx, eventId)
	if errors.Is(err, database.ErrNotFound) {
		return model.Event{}, ErrEventNotFound
	}
	if err != nil {
		return model.Event{}, fmt.Errorf("get event %v: %w", eventId, err)
	}
	return event, nil
}

// ListAllRegistrations flattens the registrations of every event, newest first. Equal
// timestamps keep event-then-insertion order.
func (s *AdminService) ListAllRegistrations(ctx context.Context) ([]model.RegistrationRecord, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	records := []model.RegistrationRecord{}
	for _, event := range events {
		for _, reg := range event.Registrations {
			records = append(records, model.RegistrationRecord{
				EventId:    event.Id,
				EventTitle: event.Title,
				Name:       reg.Name,
				Email:      reg.Email,
				Phone:      reg.Phone,
				TicketId:   reg.TicketId,
				CreatedAt:  reg.CreatedAt,
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

// DeleteRegistration removes the registration and gives its seat back in one store update.
func (s *AdminService) DeleteRegistration(ctx context.Context, ticketId string) error {
	ticketId = strings.TrimSpace(ticketId)
	if ticketId == "" {
		return ErrRegistrationNotFound
	}

	event, err := s.store.FindEventByTicketId(ctx, ticketId)
	if errors.Is(err, database.ErrNotFound) {
		return ErrRegistrationNotFound
	}
	if err != nil {
		return fmt.Errorf("find registration %v: %w", ticketId, err)
	}

	err = s.store.RemoveRegistrationAndRestoreSeat(ctx, ticketId)
	if errors.Is(err, database.ErrNotFound) {
		// removed concurrently between the lookup and the update
		return ErrRegistrationNotFound
	}
	if err != nil {
		return fmt.Errorf("delete registration %v: %w", ticketId, err)
	}

	s.log.Info("Deleted registration", "eventId", event.Id.Hex(), "ticketId", ticketId)
	return nil
}
