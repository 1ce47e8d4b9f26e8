package http

import (
	"github.com/gin-gonic/gin"

	"github.com/vibe-directory/vibe-backend/internal/auth"
)

// Register attaches project routes to the given router group. submitMW runs
// in front of POST only.
func (h *Handler) Register(rg *gin.RouterGroup, submitMW ...gin.HandlerFunc) {
	rg.Use(auth.WithAdminQuery())
	rg.GET("", h.list)
	rg.POST("", append(submitMW, h.create)...)
	rg.GET("/:id", h.get)
	rg.PATCH("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}
