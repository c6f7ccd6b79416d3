package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rishabhcod/event-registration-system2/database"
	"github.com/rishabhcod/event-registration-system2/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServices(t *testing.T) (*database.MemoryStore, *RegistrationService, *AdminService) {
	t.Helper()
	store := database.NewMemoryStore()
	return store, NewRegistrationService(store, discardLogger()), NewAdminService(store, discardLogger())
}

func createEvent(t *testing.T, admin *AdminService, title string, seats int) model.Event {
	t.Helper()
	event, err := admin.CreateEvent(context.Background(), model.NewEvent{Title: title, TotalSeats: seats})
	require.NoError(t, err)
	return event
}
