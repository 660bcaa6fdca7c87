package reservation

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/room-booking-backend/internal/db"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

// newTestPool connects to TEST_DB_DSN, applies the schema and empties the tables.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load("../../.env")

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN is not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dsn, 0)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.EnsureSchema(ctx, pool))
	_, err = pool.Exec(ctx, "TRUNCATE TABLE public.reservations, public.rooms RESTART IDENTITY CASCADE")
	require.NoError(t, err)

	roomRepo := room.NewPgxRepository(pool)
	for _, rm := range room.DefaultCatalog() {
		require.NoError(t, roomRepo.Create(ctx, rm))
	}
	return pool
}

func TestPgxRepository(t *testing.T) {
	pool := newTestPool(t)
	repo := NewPgxRepository(pool)
	ctx := context.Background()

	first := newTestReservation(t, 1, "09:00", "10:00")
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, StatusActive, first.Status)

	t.Run("exclusion constraint rejects overlap", func(t *testing.T) {
		err := repo.Create(ctx, newTestReservation(t, 1, "09:30", "10:30"))
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("unknown room", func(t *testing.T) {
		err := repo.Create(ctx, newTestReservation(t, 99, "09:00", "10:00"))
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	second := newTestReservation(t, 1, "10:00", "11:00")
	require.NoError(t, repo.Create(ctx, second))
	early := newTestReservation(t, 2, "08:00", "09:00")
	require.NoError(t, repo.Create(ctx, early))

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, first.Window, got.Window)
		assert.Equal(t, "Sync", got.Title)

		_, err = repo.GetByID(ctx, 12345)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list orders by start then id", func(t *testing.T) {
		list, err := repo.List(ctx, Filter{Day: testDay})
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, early.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)
		assert.Equal(t, second.ID, list[2].ID)
	})

	t.Run("cancel frees the window", func(t *testing.T) {
		at := time.Now().UTC()
		require.NoError(t, repo.Cancel(ctx, first.ID, at))
		assert.ErrorIs(t, repo.Cancel(ctx, first.ID, at), ErrNotFound)

		list, err := repo.List(ctx, Filter{RoomID: 1, Day: testDay})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, second.ID, list[0].ID)

		withCancelled, err := repo.List(ctx, Filter{RoomID: 1, Day: testDay, IncludeCancelled: true})
		require.NoError(t, err)
		assert.Len(t, withCancelled, 2)

		assert.NoError(t, repo.Create(ctx, newTestReservation(t, 1, "09:00", "10:00")))
	})
}
