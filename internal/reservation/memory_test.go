package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReservation(t *testing.T, roomID int64, from, to string) *Reservation {
	return &Reservation{
		RoomID:        roomID,
		Title:         "Sync",
		Window:        mustWindow(t, from, to),
		BookedBy:      "alice",
		AttendeeCount: 2,
	}
}

func TestMemoryRepositoryCreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	first := newTestReservation(t, 1, "09:00", "10:00")
	require.NoError(t, repo.Create(ctx, first))
	second := newTestReservation(t, 2, "09:00", "10:00")
	require.NoError(t, repo.Create(ctx, second))

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, StatusActive, first.Status)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestMemoryRepositoryRejectsOverlap(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.Create(ctx, newTestReservation(t, 1, "09:00", "10:00")))

	err := repo.Create(ctx, newTestReservation(t, 1, "09:30", "10:30"))
	assert.ErrorIs(t, err, ErrConflict)

	// Adjacent windows and other rooms are fine.
	assert.NoError(t, repo.Create(ctx, newTestReservation(t, 1, "10:00", "11:00")))
	assert.NoError(t, repo.Create(ctx, newTestReservation(t, 2, "09:30", "10:30")))
}

func TestMemoryRepositoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	res := newTestReservation(t, 1, "09:00", "10:00")
	require.NoError(t, repo.Create(ctx, res))

	got, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	got.Title = "changed"

	again, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sync", again.Title)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryCancel(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	res := newTestReservation(t, 1, "09:00", "10:00")
	require.NoError(t, repo.Create(ctx, res))

	at := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Cancel(ctx, res.ID, at))
	assert.ErrorIs(t, repo.Cancel(ctx, res.ID, at), ErrNotFound)
	assert.ErrorIs(t, repo.Cancel(ctx, 99, at), ErrNotFound)

	got, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	require.NotNil(t, got.CancelledAt)
	assert.Equal(t, at, *got.CancelledAt)

	// The freed window can be booked again.
	assert.NoError(t, repo.Create(ctx, newTestReservation(t, 1, "09:00", "10:00")))
}

func TestMemoryRepositoryListFiltersAndOrders(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	late := newTestReservation(t, 1, "14:00", "15:00")
	early := newTestReservation(t, 2, "08:00", "09:00")
	mid := newTestReservation(t, 1, "10:00", "11:00")
	sameStart := newTestReservation(t, 3, "10:00", "10:30")
	for _, r := range []*Reservation{late, early, mid, sameStart} {
		require.NoError(t, repo.Create(ctx, r))
	}

	other := newTestReservation(t, 1, "09:00", "10:00")
	other.Window = Window{Start: other.Window.Start.AddDate(0, 0, 1), End: other.Window.End.AddDate(0, 0, 1)}
	require.NoError(t, repo.Create(ctx, other))
	require.NoError(t, repo.Cancel(ctx, late.ID, time.Now()))

	ids := func(items []*Reservation) []int64 {
		out := make([]int64, len(items))
		for i, r := range items {
			out[i] = r.ID
		}
		return out
	}

	all, err := repo.List(ctx, Filter{Day: testDay})
	require.NoError(t, err)
	assert.Equal(t, []int64{early.ID, mid.ID, sameStart.ID}, ids(all))

	withCancelled, err := repo.List(ctx, Filter{Day: testDay, IncludeCancelled: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{early.ID, mid.ID, sameStart.ID, late.ID}, ids(withCancelled))

	room1, err := repo.List(ctx, Filter{RoomID: 1, IncludeCancelled: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{mid.ID, late.ID, other.ID}, ids(room1))
}

func TestMemoryRepositoryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewMemoryRepository()
	assert.ErrorIs(t, repo.Create(ctx, newTestReservation(t, 1, "09:00", "10:00")), context.Canceled)
	_, err := repo.List(ctx, Filter{})
	assert.ErrorIs(t, err, context.Canceled)
}
