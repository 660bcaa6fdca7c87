package http

import (
	"github.com/nekogravitycat/room-booking-backend/internal/agenda"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	roomHttp "github.com/nekogravitycat/room-booking-backend/internal/room/http"
)

type AgendaRequest struct {
	request.DateQuery
	IncludeCancelled bool `form:"include_cancelled"`
}

type EntryResponse struct {
	ID            int64            `json:"id"`
	Room          roomHttp.RoomTag `json:"room"`
	Title         string           `json:"title"`
	StartTime     string           `json:"start_time"`
	EndTime       string           `json:"end_time"`
	StartLabel    string           `json:"start_label"`
	EndLabel      string           `json:"end_label"`
	TimeRange     string           `json:"time_range"`
	BookedBy      string           `json:"booked_by"`
	BookerInitial string           `json:"booker_initial"`
	AttendeeCount int              `json:"attendee_count"`
	AttendeeLabel string           `json:"attendee_label"`
	Status        string           `json:"status"`
}

func NewEntryResponse(e agenda.Entry) EntryResponse {
	r := e.Reservation
	return EntryResponse{
		ID:            r.ID,
		Room:          roomHttp.RoomTag{ID: r.RoomID, Name: e.RoomName},
		Title:         r.Title,
		StartTime:     r.Window.Start.Format(reservation.TimeLayout),
		EndTime:       r.Window.End.Format(reservation.TimeLayout),
		StartLabel:    e.Start,
		EndLabel:      e.End,
		TimeRange:     e.TimeRange,
		BookedBy:      r.BookedBy,
		BookerInitial: e.BookerInitial,
		AttendeeCount: r.AttendeeCount,
		AttendeeLabel: e.AttendeeLabel,
		Status:        string(r.Status),
	}
}

func newEntryResponses(entries []agenda.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = NewEntryResponse(e)
	}
	return out
}

// DayResponse is the list view of one date.
type DayResponse struct {
	Date    string          `json:"date"`
	Label   string          `json:"label"`
	Entries []EntryResponse `json:"entries"`
}

type RoomScheduleResponse struct {
	Room            roomHttp.RoomResponse `json:"room"`
	AvailableAllDay bool                  `json:"available_all_day"`
	Entries         []EntryResponse       `json:"entries"`
}

// RoomsDayResponse is the per-room view of one date.
type RoomsDayResponse struct {
	Date  string                 `json:"date"`
	Label string                 `json:"label"`
	Rooms []RoomScheduleResponse `json:"rooms"`
}
