package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rishabhcod/event-registration-system2/model"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// EventStore is the persistence contract for events and their embedded registrations.
//
// ConditionalRegister and RemoveRegistrationAndRestoreSeat are the only operations that
// touch availableSeats and registrations, and each must apply its check and its mutation
// as one indivisible step against the store.
type EventStore interface {
	CreateEvent(ctx context.Context, event model.NewEvent) (model.Event, error)
	// ListEvents returns every event ordered by date ascending.
	ListEvents(ctx context.Context) ([]model.Event, error)
	FindEventById(ctx context.Context, eventId string) (model.Event, error)
	FindEventByTicketId(ctx context.Context, ticketId string) (model.Event, error)
	// ConditionalRegister decrements availableSeats and appends reg only while
	// availableSeats > 0. ErrPreconditionFailed covers both an unknown id and a sold out event.
	ConditionalRegister(ctx context.Context, eventId string, reg model.Registration) (model.Event, error)
	RemoveRegistrationAndRestoreSeat(ctx context.Context, ticketId string) error
}

// now is rounded to the millisecond precision BSON dates keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func newEventDocument(event model.NewEvent, id primitive.ObjectID) model.Event {
	createdAt := now()
	seats := event.TotalSeats
	if seats < 0 {
		seats = 0
	}
	return model.Event{
		Id:             id,
		Title:          event.Title,
		Description:    event.Description,
		Date:           event.Date,
		Location:       event.Location,
		TotalSeats:     seats,
		AvailableSeats: seats,
		Registrations:  []model.Registration{},
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
}
