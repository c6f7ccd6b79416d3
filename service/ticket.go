package service

import (
	"strings"

	"github.com/google/uuid"
)

const ticketIdLength = 12

// NewTicketId returns a short random ticket identifier (48 random bits, hex encoded).
func NewTicketId() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:ticketIdLength]
}
