package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Event struct {
	Id             primitive.ObjectID `json:"_id" bson:"_id"`
	Title          string             `json:"title" bson:"title"`
	Description    string             `json:"description" bson:"description"`
	Date           *time.Time         `json:"date" bson:"date"`
	Location       string             `json:"location" bson:"location"`
	TotalSeats     int                `json:"totalSeats" bson:"totalSeats"`
	AvailableSeats int                `json:"availableSeats" bson:"availableSeats"`
	Registrations  []Registration     `json:"registrations" bson:"registrations"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// NewEvent carries the admin-supplied fields of an event before it is stored.
type NewEvent struct {
	Title       string
	Description string
	Date        *time.Time
	Location    string
	TotalSeats  int
}

// EventSummary is the slice of an event echoed back to a registrant.
type EventSummary struct {
	Id       primitive.ObjectID `json:"id"`
	Title    string             `json:"title"`
	Date     *time.Time         `json:"date"`
	Location string             `json:"location"`
}

func (e Event) Summary() EventSummary {
	return EventSummary{Id: e.Id, Title: e.Title, Date: e.Date, Location: e.Location}
}

// FindRegistration returns the embedded registration holding ticketId.
func (e Event) FindRegistration(ticketId string) (Registration, bool) {
	for _, reg := range e.Registrations {
		if reg.TicketId == ticketId {
			return reg, true
		}
	}
	return Registration{}, false
}
