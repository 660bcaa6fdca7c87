package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/agenda")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.Day)         // List view for a date
		group.GET("/rooms", h.Rooms) // Room view for a date
	}
}
