package agenda

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

const (
	// ClockLayout renders times of day the way the booking screen shows them.
	ClockLayout = "3:04 PM"
	// DayLabelLayout renders the heading of a day view, e.g. "Monday, May 5".
	DayLabelLayout = "Monday, January 2"
)

// Entry is a reservation with the display fields a calendar needs.
type Entry struct {
	Reservation   *reservation.Reservation
	RoomName      string
	Start         string
	End           string
	TimeRange     string
	BookerInitial string
	AttendeeLabel string
}

// RoomSchedule is one row of the per-room view.
type RoomSchedule struct {
	Room    *room.Room
	Entries []Entry
}

// AvailableAllDay reports whether the room has no live reservation.
func (s RoomSchedule) AvailableAllDay() bool {
	for _, e := range s.Entries {
		if e.Reservation.IsLive() {
			return false
		}
	}
	return true
}

// DayLabel formats the heading for day.
func DayLabel(day time.Time) string {
	return day.Format(DayLabelLayout)
}

func newEntry(r *reservation.Reservation, roomName string) Entry {
	start := r.Window.Start.Format(ClockLayout)
	end := r.Window.End.Format(ClockLayout)
	return Entry{
		Reservation:   r,
		RoomName:      roomName,
		Start:         start,
		End:           end,
		TimeRange:     fmt.Sprintf("%s - %s", start, end),
		BookerInitial: initial(r.BookedBy),
		AttendeeLabel: attendeeLabel(r.AttendeeCount),
	}
}

func attendeeLabel(n int) string {
	if n == 1 {
		return "1 attendee"
	}
	return fmt.Sprintf("%d attendees", n)
}

func initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	first, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(first))
}

// Chronological attaches display fields to reservations, keeping their order.
func Chronological(rooms []*room.Room, reservations []*reservation.Reservation) []Entry {
	names := make(map[int64]string, len(rooms))
	for _, rm := range rooms {
		names[rm.ID] = rm.Name
	}

	entries := make([]Entry, 0, len(reservations))
	for _, r := range reservations {
		entries = append(entries, newEntry(r, names[r.RoomID]))
	}
	return entries
}

// GroupByRoom returns one schedule per room in the given room order. Rooms with
// no reservations get an empty schedule; reservations keep their relative order.
func GroupByRoom(rooms []*room.Room, reservations []*reservation.Reservation) []RoomSchedule {
	index := make(map[int64]int, len(rooms))
	schedules := make([]RoomSchedule, len(rooms))
	for i, rm := range rooms {
		index[rm.ID] = i
		schedules[i] = RoomSchedule{Room: rm, Entries: []Entry{}}
	}

	for _, r := range reservations {
		i, ok := index[r.RoomID]
		if !ok {
			continue
		}
		schedules[i].Entries = append(schedules[i].Entries, newEntry(r, rooms[i].Name))
	}
	return schedules
}
