package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	rooms := g.Group("/rooms")
	rooms.Use(authMiddleware)
	{
		rooms.GET("/:id/reservations", h.RoomReservations)
		rooms.GET("/:id/availability", h.RoomAvailability)
	}

	free := g.Group("/availability")
	free.Use(authMiddleware)
	{
		free.GET("", h.FreeRooms)
	}
}
