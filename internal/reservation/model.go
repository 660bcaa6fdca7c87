package reservation

import (
	"fmt"
	"net/http"
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, apperror.KindNotFound, "reservation not found")
	ErrRoomNotFound     = apperror.New(http.StatusNotFound, apperror.KindNotFound, "room not found")
	ErrInvalidWindow    = apperror.New(http.StatusBadRequest, apperror.KindInvalidWindow, "start time must be before end time on the same calendar date")
	ErrEmptyTitle       = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "title cannot be empty")
	ErrInvalidAttendees = apperror.New(http.StatusBadRequest, apperror.KindInvalidInput, "attendee count must be positive")
	ErrCapacityExceeded = apperror.New(http.StatusUnprocessableEntity, apperror.KindCapacityExceeded, "attendee count exceeds room capacity")
	ErrConflict         = apperror.New(http.StatusConflict, apperror.KindConflict, "time slot already booked")
	ErrLockTimeout      = apperror.New(http.StatusServiceUnavailable, apperror.KindTimeout, "room is busy, request timed out")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Reservation is a time-bounded claim on a room.
// Room and window never change after creation; moving a reservation is cancel + create.
type Reservation struct {
	ID            int64
	RoomID        int64
	Title         string
	Window        Window
	BookedBy      string
	AttendeeCount int
	AllowOverflow bool
	Status        Status
	CreatedAt     time.Time
	CancelledAt   *time.Time
}

// IsLive reports whether the reservation still holds its window.
func (r *Reservation) IsLive() bool {
	return r.Status != StatusCancelled
}

func (r *Reservation) clone() *Reservation {
	cp := *r
	if r.CancelledAt != nil {
		at := *r.CancelledAt
		cp.CancelledAt = &at
	}
	return &cp
}

// Filter selects reservations from a repository.
// Zero values mean "any"; cancelled reservations are skipped unless IncludeCancelled is set.
type Filter struct {
	RoomID           int64
	Day              time.Time
	IncludeCancelled bool
}

// ConflictError reports the live reservation a new request collided with.
type ConflictError struct {
	Existing *Reservation
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: reservation %d holds %s", ErrConflict.Message, e.Existing.ID, e.Existing.Window)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ConflictDetails is what a caller needs to tell the user which booking is in the way.
type ConflictDetails struct {
	ReservationID int64  `json:"reservation_id"`
	Title         string `json:"title"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
}

func (e *ConflictError) Details() any {
	w := e.Existing.Window
	return ConflictDetails{
		ReservationID: e.Existing.ID,
		Title:         e.Existing.Title,
		Date:          w.Start.Format(DateLayout),
		StartTime:     w.Start.Format(TimeLayout),
		EndTime:       w.End.Format(TimeLayout),
	}
}
