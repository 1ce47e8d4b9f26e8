package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/internal/auth"
	"github.com/vibe-directory/vibe-backend/internal/notifications/domain"
	"github.com/vibe-directory/vibe-backend/internal/notifications/repository"
	"github.com/vibe-directory/vibe-backend/internal/notifications/service"
)

type Handler struct {
	broadcaster *service.Broadcaster
	tokens      repository.TokenRepository
	notifLog    repository.NotificationLog
	log         logrus.FieldLogger
}

func New(b *service.Broadcaster, tokens repository.TokenRepository, notifLog repository.NotificationLog, log logrus.FieldLogger) *Handler {
	return &Handler{broadcaster: b, tokens: tokens, notifLog: notifLog, log: log}
}

// Register attaches the notification routes under the api group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/broadcast-notification", h.broadcast)
	rg.POST("/store-notification-token", h.storeToken)
	rg.POST("/notification", h.record)
}

type broadcastReq struct {
	Title        string `json:"title"`
	Body         string `json:"body"`
	AdminAddress string `json:"adminAddress"`
	// FID targets a single user instead of everyone.
	FID *int64 `json:"fid"`
}

func (h *Handler) broadcast(c *gin.Context) {
	var req broadcastReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}
	if !auth.IsAdmin(req.AdminAddress) {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing title or body"})
		return
	}

	var (
		stats domain.Stats
		err   error
	)
	if req.FID != nil {
		stats, err = h.broadcaster.NotifyUser(c.Request.Context(), *req.FID, req.Title, req.Body)
	} else {
		stats, err = h.broadcaster.Broadcast(c.Request.Context(), req.Title, req.Body)
	}
	if errors.Is(err, domain.ErrTokenNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No notification token for user"})
		return
	}
	if err != nil {
		h.log.WithError(err).Error("broadcast failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

type storeTokenReq struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
	URL    string `json:"url"`
}

func (h *Handler) storeToken(c *gin.Context) {
	var req storeTokenReq
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Token == "" || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing userId, token, or url"})
		return
	}

	// Wallet addresses do not parse and land on fid 0.
	fid, err := strconv.ParseInt(req.UserID, 10, 64)
	if err != nil {
		fid = 0
	}

	if err := h.tokens.Set(c.Request.Context(), fid, domain.Details{URL: req.URL, Token: req.Token}); err != nil {
		h.log.WithError(err).WithField("fid", fid).Error("store notification token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) record(c *gin.Context) {
	var msg domain.Message
	if err := c.ShouldBindJSON(&msg); err != nil || msg.Title == "" || msg.Body == "" || msg.URL == "" || msg.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required fields (title, body, url, token)"})
		return
	}

	count, err := h.notifLog.Record(c.Request.Context(), msg)
	if err != nil {
		h.log.WithError(err).Error("record notification failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notification stored successfully", "count": count})
}
