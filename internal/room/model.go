package room

import (
	"net/http"
	"slices"
	"strings"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, apperror.KindNotFound, "room not found")
	ErrInvalidID       = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "room id must be positive")
	ErrEmptyName       = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "room name cannot be empty")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "room capacity must be positive")
	ErrDuplicateID     = apperror.New(http.StatusConflict, apperror.KindInvalidInput, "duplicate room id")
)

// Room represents a bookable meeting space (e.g., Conference Room A).
// Rooms are immutable once the registry has been built.
type Room struct {
	ID        int64
	Name      string
	Capacity  int
	Equipment []string
}

// HasEquipment reports whether the room carries the tag, ignoring case.
func (r *Room) HasEquipment(tag string) bool {
	for _, e := range r.Equipment {
		if strings.EqualFold(e, tag) {
			return true
		}
	}
	return false
}

func (r *Room) clone() *Room {
	cp := *r
	cp.Equipment = slices.Clone(r.Equipment)
	return &cp
}

// normalizeEquipment trims, de-duplicates and sorts equipment tags.
func normalizeEquipment(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
