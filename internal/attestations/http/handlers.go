package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibe-directory/vibe-backend/internal/attestations/domain"
	"github.com/vibe-directory/vibe-backend/internal/attestations/service"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("/user/:address", h.forUser)
}

type createReq struct {
	UserAddress string `json:"userAddress"`
	ProjectID   string `json:"projectId"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.UserAddress == "" || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required parameters"})
		return
	}

	a, err := h.svc.AttestView(c.Request.Context(), req.UserAddress, req.ProjectID)
	if errors.Is(err, domain.ErrInvalidAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": a})
}

func (h *Handler) forUser(c *gin.Context) {
	summary, err := h.svc.ForUser(c.Request.Context(), c.Param("address"))
	if errors.Is(err, domain.ErrInvalidAddress) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}
