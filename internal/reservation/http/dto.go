package http

import (
	"time"

	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	roomHttp "github.com/nekogravitycat/room-booking-backend/internal/room/http"
)

// ListReservationsRequest defines query parameters for listing reservations.
type ListReservationsRequest struct {
	request.DateQuery
	RoomID           int64 `form:"room_id" binding:"omitempty,min=1"`
	IncludeCancelled bool  `form:"include_cancelled"`
}

type ReservationResponse struct {
	ID            int64            `json:"id"`
	Room          roomHttp.RoomTag `json:"room"`
	Title         string           `json:"title"`
	Date          string           `json:"date"`
	StartTime     string           `json:"start_time"`
	EndTime       string           `json:"end_time"`
	BookedBy      string           `json:"booked_by"`
	AttendeeCount int              `json:"attendee_count"`
	AllowOverflow bool             `json:"allow_overflow"`
	Status        string           `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	CancelledAt   *time.Time       `json:"cancelled_at,omitempty"`
}

func NewReservationResponse(r *reservation.Reservation, roomName string) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID,
		Room:          roomHttp.RoomTag{ID: r.RoomID, Name: roomName},
		Title:         r.Title,
		Date:          r.Window.Start.Format(reservation.DateLayout),
		StartTime:     r.Window.Start.Format(reservation.TimeLayout),
		EndTime:       r.Window.End.Format(reservation.TimeLayout),
		BookedBy:      r.BookedBy,
		AttendeeCount: r.AttendeeCount,
		AllowOverflow: r.AllowOverflow,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		CancelledAt:   r.CancelledAt,
	}
}

// CreateReservationBody is the booking form payload. Title and attendee count
// are checked by the service so the caller gets the specific error kind.
type CreateReservationBody struct {
	RoomID        int64  `json:"room_id" binding:"required,min=1"`
	Title         string `json:"title"`
	Date          string `json:"date" binding:"required,datetime=2006-01-02"`
	StartTime     string `json:"start_time" binding:"required"`
	EndTime       string `json:"end_time" binding:"required"`
	AttendeeCount int    `json:"attendee_count"`
	AllowOverflow bool   `json:"allow_overflow"`
}

// Window converts the form's date and times of day into a reservation window.
// A malformed date or time fails here, before the room is looked up. Start
// before end on one day is checked by the service after the room lookup.
func (b *CreateReservationBody) Window() (reservation.Window, error) {
	day, err := time.Parse(reservation.DateLayout, b.Date)
	if err != nil {
		return reservation.Window{}, reservation.ErrInvalidWindow
	}
	start, err := reservation.At(day, b.StartTime)
	if err != nil {
		return reservation.Window{}, err
	}
	end, err := reservation.At(day, b.EndTime)
	if err != nil {
		return reservation.Window{}, err
	}
	return reservation.Window{Start: start, End: end}, nil
}
