package availability

import (
	"context"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

// ReservationLister is the read side of the reservation store.
type ReservationLister interface {
	List(ctx context.Context, filter reservation.Filter) ([]*reservation.Reservation, error)
}

// RoomCatalog is the read side of the room registry.
type RoomCatalog interface {
	List() []*room.Room
	Get(id int64) (*room.Room, error)
}

// BusinessHours bounds the free-slot computation, as HH:MM times of day.
type BusinessHours struct {
	Open  string
	Close string
}

// DefaultBusinessHours matches the 9 AM - 5 PM slots of the booking form.
var DefaultBusinessHours = BusinessHours{Open: "09:00", Close: "17:00"}

// Engine answers calendar questions without mutating the store. Each method
// issues one List call, so it observes a single consistent snapshot.
type Engine struct {
	store ReservationLister
	rooms RoomCatalog
	hours BusinessHours
}

func NewEngine(store ReservationLister, rooms RoomCatalog, hours BusinessHours) *Engine {
	return &Engine{store: store, rooms: rooms, hours: hours}
}

// Hours returns the configured business hours.
func (e *Engine) Hours() BusinessHours {
	return e.hours
}

// ListByDate returns the reservations on day ordered by start time, then id.
func (e *Engine) ListByDate(ctx context.Context, day time.Time, includeCancelled bool) ([]*reservation.Reservation, error) {
	return e.store.List(ctx, reservation.Filter{
		Day:              reservation.DayOf(day),
		IncludeCancelled: includeCancelled,
	})
}

// ListByRoomAndDate is ListByDate restricted to one room.
func (e *Engine) ListByRoomAndDate(ctx context.Context, roomID int64, day time.Time, includeCancelled bool) ([]*reservation.Reservation, error) {
	if _, err := e.rooms.Get(roomID); err != nil {
		return nil, err
	}
	return e.store.List(ctx, reservation.Filter{
		RoomID:           roomID,
		Day:              reservation.DayOf(day),
		IncludeCancelled: includeCancelled,
	})
}

// IsFree reports whether no live reservation on the room overlaps w.
func (e *Engine) IsFree(ctx context.Context, roomID int64, w reservation.Window) (bool, error) {
	w = w.Normalize()
	if err := w.Validate(); err != nil {
		return false, err
	}
	live, err := e.ListByRoomAndDate(ctx, roomID, w.Day(), false)
	if err != nil {
		return false, err
	}
	return reservation.FindConflict(live, w) == nil, nil
}

// FreeRooms returns the rooms with no live reservation overlapping w, in catalog order.
func (e *Engine) FreeRooms(ctx context.Context, w reservation.Window) ([]*room.Room, error) {
	w = w.Normalize()
	if err := w.Validate(); err != nil {
		return nil, err
	}
	live, err := e.ListByDate(ctx, w.Day(), false)
	if err != nil {
		return nil, err
	}

	byRoom := make(map[int64][]*reservation.Reservation)
	for _, r := range live {
		byRoom[r.RoomID] = append(byRoom[r.RoomID], r)
	}

	var free []*room.Room
	for _, rm := range e.rooms.List() {
		if reservation.FindConflict(byRoom[rm.ID], w) == nil {
			free = append(free, rm)
		}
	}
	return free, nil
}

// FreeSlots returns the gaps between live reservations of the room within business hours.
func (e *Engine) FreeSlots(ctx context.Context, roomID int64, day time.Time) ([]reservation.Window, error) {
	live, err := e.ListByRoomAndDate(ctx, roomID, day, false)
	if err != nil {
		return nil, err
	}
	return CalculateFreeSlots(day, e.hours.Open, e.hours.Close, live)
}
