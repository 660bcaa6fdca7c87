package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/room-booking-backend/internal/auth"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/request"
	"github.com/nekogravitycat/room-booking-backend/internal/pkg/response"
	"github.com/nekogravitycat/room-booking-backend/internal/reservation"
	"github.com/nekogravitycat/room-booking-backend/internal/room"
)

type Handler struct {
	service  reservation.Service
	registry *room.Registry
}

func NewHandler(service reservation.Service, registry *room.Registry) *Handler {
	return &Handler{
		service:  service,
		registry: registry,
	}
}

func (h *Handler) roomName(id int64) string {
	if r, err := h.registry.Get(id); err == nil {
		return r.Name
	}
	return ""
}

func (h *Handler) List(c *gin.Context) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	filter := reservation.Filter{
		RoomID:           req.RoomID,
		IncludeCancelled: req.IncludeCancelled,
	}
	if req.Date != "" {
		day, err := req.Day(time.Now)
		if err != nil {
			response.BadRequest(c, "invalid date", err)
			return
		}
		filter.Day = day
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := make([]ReservationResponse, len(items))
	for i, r := range items {
		resp[i] = NewReservationResponse(r, h.roomName(r.RoomID))
	}
	c.JSON(http.StatusOK, response.NewListResponse(resp))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	identity := auth.GetIdentity(c)
	if identity == "" {
		c.JSON(http.StatusUnauthorized, response.ErrorResponse{Error: "unauthorized", Kind: string(apperror.KindUnauthorized)})
		return
	}

	window, err := body.Window()
	if err != nil {
		response.Error(c, err)
		return
	}

	req := reservation.CreateRequest{
		RoomID:        body.RoomID,
		Title:         body.Title,
		Window:        window,
		BookedBy:      identity,
		AttendeeCount: body.AttendeeCount,
		AllowOverflow: body.AllowOverflow,
	}

	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(r, h.roomName(r.RoomID)))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(r, h.roomName(r.RoomID)))
}

func (h *Handler) Cancel(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.Cancel(c.Request.Context(), req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
