package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/internal/identity"
)

type Handler struct {
	client *identity.NeynarClient
	log    logrus.FieldLogger
}

func New(client *identity.NeynarClient, log logrus.FieldLogger) *Handler {
	return &Handler{client: client, log: log}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/user", h.user)
}

func (h *Handler) user(c *gin.Context) {
	if !h.client.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Farcaster API is not configured properly"})
		return
	}

	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Address parameter is required"})
		return
	}

	users, err := h.client.SearchByVerification(c.Request.Context(), address)
	if err != nil {
		h.log.WithError(err).WithField("address", address).Error("farcaster user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": "No Farcaster user found for this address"})
		return
	}

	u := users[0]
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"fid":          u.FID,
		"username":     u.Username,
		"displayName":  u.DisplayName,
		"profileImage": u.PfpURL,
	})
}
