package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rishabhcod/event-registration-system2/model"
)

// SeedableStore is an EventStore that can report how many events it holds.
type SeedableStore interface {
	EventStore
	CountEvents(ctx context.Context) (int64, error)
}

func sampleDate(year int, month time.Month, day, hour int) *time.Time {
	date := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return &date
}

func SampleEvents() []model.NewEvent {
	return []model.NewEvent{
		{
			Title:       "Tech Meetup 2025",
			Description: "A casual meetup to learn, network, and build projects together.",
			Date:        sampleDate(2025, time.September, 1, 18),
			Location:    "VIT-AP Auditorium",
			TotalSeats:  100,
		},
		{
			Title:       "Frontend Workshop",
			Description: "Hands-on workshop: React basics, components and state.",
			Date:        sampleDate(2025, time.September, 15, 14),
			Location:    "Room 12B",
			TotalSeats:  30,
		},
	}
}

// SeedIfEmpty inserts the sample events when the store has none. It returns how many
// events were inserted.
func SeedIfEmpty(ctx context.Context, store SeedableStore, log *slog.Logger) (int, error) {
	count, err := store.CountEvents(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Debug("Store already holds events, skipping seed", "count", count)
		return 0, nil
	}

	seeded := 0
	for _, event := range SampleEvents() {
		if _, err := store.CreateEvent(ctx, event); err != nil {
			return seeded, fmt.Errorf("seed event %q: %w", event.Title, err)
		}
		seeded++
	}
	log.Info("Seeded sample events", "count", seeded)
	return seeded, nil
}
