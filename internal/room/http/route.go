package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room catalog routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/rooms")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)    // List rooms
		group.GET("/:id", h.Get) // Get room details
	}
}
