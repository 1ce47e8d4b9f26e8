package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vibe-directory/vibe-backend/internal/views/service"
)

type Handler struct {
	tracker *service.Tracker
}

func New(tracker *service.Tracker) *Handler {
	return &Handler{tracker: tracker}
}

// Register attaches the view routes. recordMW runs in front of POST only.
func (h *Handler) Register(rg *gin.RouterGroup, recordMW ...gin.HandlerFunc) {
	rg.GET("", h.stats)
	rg.POST("", append(recordMW, h.record)...)
}

func (h *Handler) stats(c *gin.Context) {
	ctx := c.Request.Context()

	if userID := c.Query("userId"); userID != "" {
		c.Header("Cache-Control", "private, max-age=60")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"userId":         userID,
			"viewedProjects": h.tracker.ListViewed(ctx, userID),
			"viewCount":      h.tracker.ViewCount(ctx, userID),
		}})
		return
	}

	if projectID := c.Query("projectId"); projectID != "" {
		c.Header("Cache-Control", "public, max-age=300")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"projectId": projectID,
			"viewCount": h.tracker.ProjectViewCount(ctx, projectID),
		}})
		return
	}

	if ids := splitIDs(c.Query("projectIds")); len(ids) > 0 {
		c.Header("Cache-Control", "public, max-age=300")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"viewCounts": h.tracker.ProjectViewCounts(ctx, ids),
		}})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing userId or projectId parameter"})
}

type recordReq struct {
	UserID     string   `json:"userId"`
	ProjectID  string   `json:"projectId"`
	ProjectIDs []string `json:"projectIds"`
}

func (h *Handler) record(c *gin.Context) {
	var req recordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}
	ctx := c.Request.Context()

	// A present projectIds array (even empty) selects the batch form.
	if req.UserID != "" && req.ProjectIDs != nil {
		if len(req.ProjectIDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Empty projectIds array"})
			return
		}
		if !h.tracker.MarkViewedBatch(ctx, req.UserID, req.ProjectIDs) {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to track multiple project views"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if req.UserID == "" || req.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing userId or projectId"})
		return
	}
	if !h.tracker.MarkViewed(ctx, req.UserID, req.ProjectID) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to track project view"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func splitIDs(raw string) []string {
	var out []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
