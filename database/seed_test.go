package database

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishabhcod/event-registration-system2/model"
)

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewMemoryStore()

	seeded, err := SeedIfEmpty(ctx, store, log)
	require.NoError(t, err)
	assert.Equal(t, len(SampleEvents()), seeded)

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Tech Meetup 2025", events[0].Title)
	assert.Equal(t, 100, events[0].AvailableSeats)
	assert.Equal(t, "Frontend Workshop", events[1].Title)

	seeded, err = SeedIfEmpty(ctx, store, log)
	require.NoError(t, err)
	assert.Zero(t, seeded)
}

func TestSeedSkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewMemoryStore()
	_, err := store.CreateEvent(ctx, model.NewEvent{Title: "Existing"})
	require.NoError(t, err)

	seeded, err := SeedIfEmpty(ctx, store, log)
	require.NoError(t, err)
	assert.Zero(t, seeded)

	count, err := store.CountEvents(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
