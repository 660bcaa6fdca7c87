package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

var day = time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)

func window(t *testing.T, from, to string) reservation.Window {
	t.Helper()
	w, err := reservation.NewWindow(day, from, to)
	require.NoError(t, err)
	return w
}

type fixture struct {
	engine  *Engine
	service reservation.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg, err := room.NewRegistry(room.DefaultCatalog())
	require.NoError(t, err)

	svc := reservation.NewService(reservation.NewMemoryRepository(), reg, reservation.NewLocalLocker(), nil, nil)
	return &fixture{
		engine:  NewEngine(svc, reg, DefaultBusinessHours),
		service: svc,
	}
}

func (f *fixture) book(t *testing.T, roomID int64, from, to string) *reservation.Reservation {
	t.Helper()
	res, err := f.service.Create(context.Background(), reservation.CreateRequest{
		RoomID:        roomID,
		Title:         "Meeting",
		Window:        window(t, from, to),
		BookedBy:      "alice",
		AttendeeCount: 2,
	})
	require.NoError(t, err)
	return res
}

func TestEngineListByDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	late := f.book(t, 1, "14:00", "15:00")
	early := f.book(t, 2, "09:00", "10:00")
	cancelled := f.book(t, 3, "08:00", "09:00")
	require.NoError(t, f.service.Cancel(ctx, cancelled.ID))

	live, err := f.engine.ListByDate(ctx, day.Add(13*time.Hour), false)
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, early.ID, live[0].ID)
	assert.Equal(t, late.ID, live[1].ID)

	all, err := f.engine.ListByDate(ctx, day, true)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, cancelled.ID, all[0].ID)

	nextDay, err := f.engine.ListByDate(ctx, day.AddDate(0, 0, 1), true)
	require.NoError(t, err)
	assert.Empty(t, nextDay)
}

func TestEngineListByRoomAndDate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.book(t, 1, "09:00", "10:00")
	f.book(t, 2, "09:00", "10:00")

	list, err := f.engine.ListByRoomAndDate(ctx, 1, day, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].RoomID)

	_, err = f.engine.ListByRoomAndDate(ctx, 99, day, false)
	assert.ErrorIs(t, err, room.ErrNotFound)
}

func TestEngineIsFree(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res := f.book(t, 1, "09:00", "10:00")

	tests := []struct {
		name     string
		from, to string
		want     bool
	}{
		{name: "overlapping", from: "09:30", to: "10:30", want: false},
		{name: "adjacent after", from: "10:00", to: "11:00", want: true},
		{name: "adjacent before", from: "08:00", to: "09:00", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			free, err := f.engine.IsFree(ctx, 1, window(t, tt.from, tt.to))
			require.NoError(t, err)
			assert.Equal(t, tt.want, free)
		})
	}

	require.NoError(t, f.service.Cancel(ctx, res.ID))
	free, err := f.engine.IsFree(ctx, 1, window(t, "09:30", "10:30"))
	require.NoError(t, err)
	assert.True(t, free, "cancelled reservations free their window")

	_, err = f.engine.IsFree(ctx, 1, reservation.Window{Start: day.Add(10 * time.Hour), End: day.Add(9 * time.Hour)})
	assert.ErrorIs(t, err, reservation.ErrInvalidWindow)

	_, err = f.engine.IsFree(ctx, 99, window(t, "09:00", "10:00"))
	assert.ErrorIs(t, err, room.ErrNotFound)
}

func TestEngineFreeRooms(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.book(t, 1, "09:00", "10:00")
	f.book(t, 3, "09:30", "11:00")
	f.book(t, 5, "10:00", "11:00")

	free, err := f.engine.FreeRooms(ctx, window(t, "09:00", "10:00"))
	require.NoError(t, err)

	var ids []int64
	for _, rm := range free {
		ids = append(ids, rm.ID)
	}
	assert.Equal(t, []int64{2, 4, 5}, ids)

	_, err = f.engine.FreeRooms(ctx, reservation.Window{})
	assert.ErrorIs(t, err, reservation.ErrInvalidWindow)
}

// Windows in a non-UTC location compare by wall clock, the same way Create does.
func TestEngineZonedWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	taipei := time.FixedZone("UTC+8", 8*60*60)
	zoned := reservation.Window{
		Start: time.Date(2025, 5, 5, 9, 0, 0, 0, taipei),
		End:   time.Date(2025, 5, 5, 10, 0, 0, 0, taipei),
	}

	_, err := f.service.Create(ctx, reservation.CreateRequest{
		RoomID:        1,
		Title:         "Standup",
		Window:        zoned,
		BookedBy:      "alice",
		AttendeeCount: 2,
	})
	require.NoError(t, err)

	free, err := f.engine.IsFree(ctx, 1, zoned)
	require.NoError(t, err)
	assert.False(t, free)

	_, err = f.service.Create(ctx, reservation.CreateRequest{
		RoomID:        1,
		Title:         "Retro",
		Window:        zoned,
		BookedBy:      "bob",
		AttendeeCount: 2,
	})
	assert.ErrorIs(t, err, reservation.ErrConflict)

	f.book(t, 2, "09:00", "10:00")
	rooms, err := f.engine.FreeRooms(ctx, zoned)
	require.NoError(t, err)
	var ids []int64
	for _, r := range rooms {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{3, 4, 5}, ids)
}

func TestEngineFreeSlots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.book(t, 1, "10:00", "11:00")
	f.book(t, 1, "13:00", "14:30")

	slots, err := f.engine.FreeSlots(ctx, 1, day)
	require.NoError(t, err)
	assert.Equal(t, []reservation.Window{
		window(t, "09:00", "10:00"),
		window(t, "11:00", "13:00"),
		window(t, "14:30", "17:00"),
	}, slots)

	empty, err := f.engine.FreeSlots(ctx, 2, day)
	require.NoError(t, err)
	assert.Equal(t, []reservation.Window{window(t, "09:00", "17:00")}, empty)

	assert.Equal(t, DefaultBusinessHours, f.engine.Hours())
}
