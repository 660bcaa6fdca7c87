package reservation

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

type memoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*Reservation
}

// NewMemoryRepository returns a process-local Repository. Ids start at 1.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		nextID: 1,
		items:  make(map[int64]*Reservation),
	}
}

func (r *memoryRepository) Create(ctx context.Context, res *Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Same guarantee the Postgres exclusion constraint gives.
	for _, existing := range r.items {
		if existing.RoomID == res.RoomID && existing.IsLive() && existing.Window.Overlaps(res.Window) {
			return ErrConflict
		}
	}

	res.ID = r.nextID
	r.nextID++
	res.Status = StatusActive
	res.CreatedAt = time.Now().UTC()
	res.CancelledAt = nil
	r.items[res.ID] = res.clone()
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	res, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return res.clone(), nil
}

func (r *memoryRepository) Cancel(ctx context.Context, id int64, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	res, ok := r.items[id]
	if !ok || !res.IsLive() {
		return ErrNotFound
	}
	res.Status = StatusCancelled
	res.CancelledAt = &at
	return nil
}

func (r *memoryRepository) List(ctx context.Context, filter Filter) ([]*Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var day time.Time
	if !filter.Day.IsZero() {
		day = DayOf(filter.Day)
	}

	var out []*Reservation
	for _, res := range r.items {
		if filter.RoomID != 0 && res.RoomID != filter.RoomID {
			continue
		}
		if !day.IsZero() && !res.Window.Day().Equal(day) {
			continue
		}
		if !filter.IncludeCancelled && !res.IsLive() {
			continue
		}
		out = append(out, res.clone())
	}
	sortChronologically(out)
	return out, nil
}

// sortChronologically orders by start time, ties broken by id.
func sortChronologically(items []*Reservation) {
	slices.SortFunc(items, func(a, b *Reservation) int {
		if c := a.Window.Start.Compare(b.Window.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
