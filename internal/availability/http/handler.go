package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/availability"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	reservationHttp "github.com/nekogravitycat/room-booking-backend/internal/reservation/http"
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

// RoomReservations lists one room's reservations for a date.
func (h *Handler) RoomReservations(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}
	var req RoomReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	day, err := req.Day(h.now)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}

	items, err := h.engine.ListByRoomAndDate(c.Request.Context(), uri.ID, day, req.IncludeCancelled)
	if err != nil {
		response.Error(c, err)
		return
	}

	rm, err := h.registry.Get(uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	resp := make([]reservationHttp.ReservationResponse, len(items))
	for i, r := range items {
		resp[i] = reservationHttp.NewReservationResponse(r, rm.Name)
	}
	c.JSON(http.StatusOK, response.NewListResponse(resp))
}

// RoomAvailability returns the room's free slots for a date and, when a
// window is given, whether that window is free.
func (h *Handler) RoomAvailability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}
	var q WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	day, err := q.Day(h.now)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}

	ctx := c.Request.Context()
	slots, err := h.engine.FreeSlots(ctx, uri.ID, day)
	if err != nil {
		response.Error(c, err)
		return
	}

	hours := h.engine.Hours()
	resp := RoomAvailabilityResponse{
		RoomID:    uri.ID,
		Date:      day.Format(reservation.DateLayout),
		Open:      hours.Open,
		Close:     hours.Close,
		FreeSlots: newSlotResponses(slots),
	}

	if q.HasWindow() {
		w, err := reservation.NewWindow(day, q.Start, q.End)
		if err != nil {
			response.Error(c, err)
			return
		}
		free, err := h.engine.IsFree(ctx, uri.ID, w)
		if err != nil {
			response.Error(c, err)
			return
		}
		resp.Window = &SlotResponse{StartTime: q.Start, EndTime: q.End}
		resp.Free = &free
	}

	c.JSON(http.StatusOK, resp)
}

// FreeRooms lists the rooms with nothing booked in the requested window.
func (h *Handler) FreeRooms(c *gin.Context) {
	var q WindowQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}
	day, err := q.Day(h.now)
	if err != nil {
		response.BadRequest(c, "invalid date", err)
		return
	}
	w, err := reservation.NewWindow(day, q.Start, q.End)
	if err != nil {
		response.Error(c, err)
		return
	}

	rooms, err := h.engine.FreeRooms(c.Request.Context(), w)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]roomHttp.RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = roomHttp.NewResponse(r)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}
