package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Registration struct {
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone,omitempty" bson:"phone,omitempty"`
	TicketId  string    `json:"ticketId" bson:"ticketId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// RegistrationRecord is a registration flattened out of its event for the admin listing.
type RegistrationRecord struct {
	EventId    primitive.ObjectID `json:"eventId"`
	EventTitle string             `json:"eventTitle"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone,omitempty"`
	TicketId   string             `json:"ticketId"`
	CreatedAt  time.Time          `json:"createdAt"`
}

// Receipt is returned to an attendee after a successful registration.
type Receipt struct {
	TicketId     string       `json:"ticketId"`
	Event        EventSummary `json:"event"`
	Registration Registration `json:"registration"`
}
