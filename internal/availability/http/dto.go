package http

import (
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
)

// WindowQuery selects an optional window on a date.
type WindowQuery struct {
	request.DateQuery
	Start string `form:"start"`
	End   string `form:"end"`
}

// HasWindow reports whether any end of the window was supplied.
func (q *WindowQuery) HasWindow() bool {
	return q.Start != "" || q.End != ""
}

type RoomReservationsRequest struct {
	request.DateQuery
	IncludeCancelled bool `form:"include_cancelled"`
}

type SlotResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func newSlotResponses(windows []reservation.Window) []SlotResponse {
	out := make([]SlotResponse, len(windows))
	for i, w := range windows {
		out[i] = SlotResponse{
			StartTime: w.Start.Format(reservation.TimeLayout),
			EndTime:   w.End.Format(reservation.TimeLayout),
		}
	}
	return out
}

// RoomAvailabilityResponse answers "is this room free" for a date and optional window.
type RoomAvailabilityResponse struct {
	RoomID    int64          `json:"room_id"`
	Date      string         `json:"date"`
	Open      string         `json:"open"`
	Close     string         `json:"close"`
	FreeSlots []SlotResponse `json:"free_slots"`
	Window    *SlotResponse  `json:"window,omitempty"`
	Free      *bool          `json:"free,omitempty"`
}
