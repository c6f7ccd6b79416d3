package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rishabhcod/event-registration-system2/model"
)

type memoryEvent struct {
	mu    sync.Mutex
	event model.Event
}

// MemoryStore is an in-process EventStore. It has no conditional single-document update
// to lean on, so every event carries its own mutex and seat mutations run under it.
type MemoryStore struct {
	mu     sync.RWMutex
	events map[primitive.ObjectID]*memoryEvent
	order  []primitive.ObjectID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{events: map[primitive.ObjectID]*memoryEvent{}}
}

func (s *MemoryStore) CreateEvent(ctx context.Context, event model.NewEvent) (model.Event, error) {
	doc := newEventDocument(event, primitive.NewObjectID())

	s.mu.Lock()
	s.events[doc.Id] = &memoryEvent{event: doc}
	s.order = append(s.order, doc.Id)
	s.mu.Unlock()

	return copyEvent(doc), nil
}

func (s *MemoryStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	events := []model.Event{}
	for _, entry := range s.snapshot() {
		entry.mu.Lock()
		events = append(events, copyEvent(entry.event))
		entry.mu.Unlock()
	}
	sort.SliceStable(events, func(i, j int) bool {
		return dateBefore(events[i].Date, events[j].Date)
	})
	return events, nil
}

func (s *MemoryStore) FindEventById(ctx context.Context, eventId string) (model.Event, error) {
	entry, ok := s.lookup(eventId)
	if !ok {
		return model.Event{}, ErrNotFound
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return copyEvent(entry.event), nil
}

func (s *MemoryStore) FindEventByTicketId(ctx context.Context, ticketId string) (model.Event, error) {
	for _, entry := range s.snapshot() {
		entry.mu.Lock()
		var event model.Event
		_, found := entry.event.FindRegistration(ticketId)
		if found {
			event = copyEvent(entry.event)
		}
		entry.mu.Unlock()
		if found {
			return event, nil
		}
	}
	return model.Event{}, ErrNotFound
}

func (s *MemoryStore) ConditionalRegister(ctx context.Context, eventId string, reg model.Registration) (model.Event, error) {
	entry, ok := s.lookup(eventId)
	if !ok {
		return model.Event{}, ErrPreconditionFailed
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if entry.event.AvailableSeats <= 0 {
		return model.Event{}, ErrPreconditionFailed
	}
	if _, taken := entry.event.FindRegistration(reg.TicketId); taken {
		return model.Event{}, ErrPreconditionFailed
	}
	entry.event.AvailableSeats--
	entry.event.Registrations = append(entry.event.Registrations, reg)
	entry.event.UpdatedAt = now()
	return copyEvent(entry.event), nil
}

func (s *MemoryStore) RemoveRegistrationAndRestoreSeat(ctx context.Context, ticketId string) error {
	for _, entry := range s.snapshot() {
		entry.mu.Lock()
		for i, reg := range entry.event.Registrations {
			if reg.TicketId != ticketId {
				continue
			}
			regs := entry.event.Registrations
			entry.event.Registrations = append(regs[:i:i], regs[i+1:]...)
			entry.event.AvailableSeats++
			entry.event.UpdatedAt = now()
			entry.mu.Unlock()
			return nil
		}
		entry.mu.Unlock()
	}
	return ErrNotFound
}

func (s *MemoryStore) CountEvents(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.events)), nil
}

func (s *MemoryStore) lookup(eventId string) (*memoryEvent, bool) {
	objId, err := primitive.ObjectIDFromHex(eventId)
	if err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.events[objId]
	return entry, ok
}

// snapshot returns the events in insertion order.
func (s *MemoryStore) snapshot() []*memoryEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]*memoryEvent, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.events[id])
	}
	return entries
}

// dateBefore orders undated events first, as a MongoDB ascending sort does with null.
func dateBefore(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b != nil
	}
	return a.Before(*b)
}

func copyEvent(event model.Event) model.Event {
	if event.Date != nil {
		date := *event.Date
		event.Date = &date
	}
	regs := make([]model.Registration, len(event.Registrations))
	copy(regs, event.Registrations)
	event.Registrations = regs
	return event
}
