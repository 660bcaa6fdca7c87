package availability

import (
	"slices"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
)

// CalculateFreeSlots returns the free windows of day between openStr and closeStr
// (HH:MM) given the room's reservations. Cancelled reservations are ignored and
// reservations may be unsorted. A fully booked day yields nil.
func CalculateFreeSlots(day time.Time, openStr, closeStr string, reservations []*reservation.Reservation) ([]reservation.Window, error) {
	hours, err := reservation.NewWindow(day, openStr, closeStr)
	if err != nil {
		return nil, err
	}

	live := make([]*reservation.Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.IsLive() && r.Window.Overlaps(hours) {
			live = append(live, r)
		}
	}
	slices.SortFunc(live, func(a, b *reservation.Reservation) int {
		return a.Window.Start.Compare(b.Window.Start)
	})

	var free []reservation.Window
	cursor := hours.Start
	for _, r := range live {
		if r.Window.Start.After(cursor) {
			free = append(free, reservation.Window{Start: cursor, End: r.Window.Start})
		}
		if r.Window.End.After(cursor) {
			cursor = r.Window.End
		}
	}
	if cursor.Before(hours.End) {
		free = append(free, reservation.Window{Start: cursor, End: hours.End})
	}
	return free, nil
}
