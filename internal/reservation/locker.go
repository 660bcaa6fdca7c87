package reservation

import (
	"context"
	"sync"
)

// Locker serializes create and cancel per room. Lock blocks until the room's
// section is free or ctx is done; the returned func releases it and is safe to call twice.
type Locker interface {
	Lock(ctx context.Context, roomID int64) (unlock func(), err error)
}

type localLocker struct {
	mu    sync.Mutex
	slots map[int64]chan struct{}
}

// NewLocalLocker returns an in-process Locker. Rooms never block each other.
func NewLocalLocker() Locker {
	return &localLocker{slots: make(map[int64]chan struct{})}
}

func (l *localLocker) slot(roomID int64) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[roomID]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[roomID] = s
	}
	return s
}

func (l *localLocker) Lock(ctx context.Context, roomID int64) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := l.slot(roomID)
	select {
	case s <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-s }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
