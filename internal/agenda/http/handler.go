package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/agenda"
	"github.com/nekogravitycat/room-booking-backend/internal/availability"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
	roomHttp "github.com/nekogravitycat/room-booking-backend/internal/room/http"
)

type Handler struct {
	engine   *availability.Engine
	registry *room.Registry
	now      func() time.Time
}

func NewHandler(engine *availability.Engine, registry *room.Registry) *Handler {
	return &Handler{engine: engine, registry: registry, now: time.Now}
}

// load binds the date query and fetches that day's reservations.
func (h *Handler) load(c *gin.Context) (time.Time, []*reservation.Reservation, bool) {
	var req AgendaRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return time.Time{}, nil, false
	}
	day, err := req.Day(h.now)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return time.Time{}, nil, false
	}

	items, err := h.engine.ListByDate(c.Request.Context(), day, req.IncludeCancelled)
	if err != nil {
		response.Error(c, err)
		return time.Time{}, nil, false
	}
	return day, items, true
}

// Day serves the chronological list view.
func (h *Handler) Day(c *gin.Context) {
	day, items, ok := h.load(c)
	if !ok {
		return
	}

	entries := agenda.Chronological(h.registry.List(), items)
	c.JSON(http.StatusOK, DayResponse{
		Date:    day.Format(reservation.DateLayout),
		Label:   agenda.DayLabel(day),
		Entries: newEntryResponses(entries),
	})
}

// Rooms serves the per-room view, including rooms with nothing booked.
func (h *Handler) Rooms(c *gin.Context) {
	day, items, ok := h.load(c)
	if !ok {
		return
	}

	schedules := agenda.GroupByRoom(h.registry.List(), items)
	rooms := make([]RoomScheduleResponse, len(schedules))
	for i, s := range schedules {
		rooms[i] = RoomScheduleResponse{
			Room:            roomHttp.NewResponse(s.Room),
			AvailableAllDay: s.AvailableAllDay(),
			Entries:         newEntryResponses(s.Entries),
		}
	}

	c.JSON(http.StatusOK, RoomsDayResponse{
		Date:  day.Format(reservation.DateLayout),
		Label: agenda.DayLabel(day),
		Rooms: rooms,
	})
}
