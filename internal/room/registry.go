package room

import (
	"context"
	"fmt"
	"strings"
)

// Registry is the read-only room catalog. It is built once at startup and
// is safe for concurrent reads without locking.
type Registry struct {
	rooms []*Room
	byID  map[int64]*Room
}

// NewRegistry validates the rooms and builds a registry that keeps their order.
func NewRegistry(rooms []*Room) (*Registry, error) {
	reg := &Registry{
		rooms: make([]*Room, 0, len(rooms)),
		byID:  make(map[int64]*Room, len(rooms)),
	}
	for _, r := range rooms {
		// Zero is the "any room" value of reservation filters.
		if r.ID <= 0 {
			return nil, fmt.Errorf("room %d: %w", r.ID, ErrInvalidID)
		}
		if strings.TrimSpace(r.Name) == "" {
			return nil, fmt.Errorf("room %d: %w", r.ID, ErrEmptyName)
		}
		if r.Capacity <= 0 {
			return nil, fmt.Errorf("room %d: %w", r.ID, ErrInvalidCapacity)
		}
		if _, exists := reg.byID[r.ID]; exists {
			return nil, fmt.Errorf("room %d: %w", r.ID, ErrDuplicateID)
		}

		// Copy so callers cannot mutate the catalog through the slice they passed in.
		cp := &Room{
			ID:        r.ID,
			Name:      strings.TrimSpace(r.Name),
			Capacity:  r.Capacity,
			Equipment: normalizeEquipment(r.Equipment),
		}
		reg.rooms = append(reg.rooms, cp)
		reg.byID[cp.ID] = cp
	}
	return reg, nil
}

// Load builds the registry from the repository. When the repository is empty
// and seed is non-empty, the seed rooms are stored first.
func Load(ctx context.Context, repo Repository, seed []*Room) (*Registry, error) {
	rooms, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 && len(seed) > 0 {
		for _, r := range seed {
			if err := repo.Create(ctx, r); err != nil {
				return nil, err
			}
		}
		if rooms, err = repo.List(ctx); err != nil {
			return nil, err
		}
	}
	return NewRegistry(rooms)
}

// List returns a copy of every room in catalog order.
func (r *Registry) List() []*Room {
	out := make([]*Room, len(r.rooms))
	for i, room := range r.rooms {
		out[i] = room.clone()
	}
	return out
}

// Get returns the room with the given id.
func (r *Registry) Get(id int64) (*Room, error) {
	room, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return room.clone(), nil
}

// Filter returns the rooms that carry every requested equipment tag, in catalog order.
func (r *Registry) Filter(equipment []string) []*Room {
	if len(equipment) == 0 {
		return r.List()
	}
	var out []*Room
	for _, room := range r.rooms {
		ok := true
		for _, tag := range equipment {
			if !room.HasEquipment(tag) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, room.clone())
		}
	}
	return out
}
