package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/vibe-directory/vibe-backend/internal/auth"
	"github.com/vibe-directory/vibe-backend/internal/projects/domain"
)

const (
	cachePublicList = "public, max-age=300, s-maxage=300, stale-while-revalidate=600"
	cacheAdminList  = "private, no-store"
	cacheNoStore    = "no-store, max-age=0"
)

func (h *Handler) list(c *gin.Context) {
	showAll := c.Query("showAll") == "true" && auth.RequestIsAdmin(c)

	projects := h.svc.GetAll(c.Request.Context(), showAll)
	if showAll {
		c.Header("Cache-Control", cacheAdminList)
	} else {
		c.Header("Cache-Control", cachePublicList)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": projects})
}

func (h *Handler) get(c *gin.Context) {
	includeHidden := auth.RequestIsAdmin(c)

	p, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), includeHidden)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

type createReq struct {
	Project       *domain.Project `json:"project"`
	AdminAddress  string          `json:"adminAddress"`
	AuthorAddress string          `json:"authorAddress"`
}

func (h *Handler) create(c *gin.Context) {
	c.Header("Cache-Control", cacheNoStore)

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Project == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required project fields"})
		return
	}
	p := *req.Project

	// Admin adds keep displayed as sent; the service defaults it to shown.
	if !auth.IsAdmin(req.AdminAddress) {
		if strings.TrimSpace(req.AuthorAddress) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Wallet connection required"})
			return
		}
		if !auth.SameAddress(p.AuthorAddress, req.AuthorAddress) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Author address does not match connected wallet"})
			return
		}
		if !auth.IsAdmin(req.AuthorAddress) {
			p.Displayed = domain.Bool(false)
			p.Featured = domain.Bool(false)
		}
	}

	h.fillAuthor(c, &p)

	created, err := h.svc.Add(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidProject) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Missing required project fields"})
			return
		}
		h.log.WithError(err).Error("add project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// fillAuthor completes author and authorFid from the submitter's address,
// then falls back to the social ID for the name.
func (h *Handler) fillAuthor(c *gin.Context, p *domain.Project) {
	if h.resolver == nil {
		return
	}
	if strings.TrimSpace(p.Author) != "" && p.AuthorFID != 0 {
		return
	}
	ctx := c.Request.Context()

	if p.AuthorAddress != "" {
		if name, fid, ok := h.resolver.ResolveAuthor(ctx, p.AuthorAddress); ok {
			if strings.TrimSpace(p.Author) == "" {
				p.Author = name
			}
			if p.AuthorFID == 0 {
				p.AuthorFID = fid
			}
		}
	}

	if strings.TrimSpace(p.Author) == "" && p.AuthorFID != 0 {
		if name, ok := h.resolver.NameByFID(ctx, p.AuthorFID); ok {
			p.Author = name
		}
	}
}

type updateReq struct {
	AdminAddress string        `json:"adminAddress"`
	Project      *domain.Patch `json:"project"`
}

func (h *Handler) update(c *gin.Context) {
	c.Header("Cache-Control", cacheNoStore)
	id := c.Param("id")

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
		return
	}

	if !auth.IsAdmin(req.AdminAddress) {
		h.log.WithFields(logrus.Fields{"project_id": id, "address": req.AdminAddress}).Warn("unauthorized update attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	var patch domain.Patch
	if req.Project != nil {
		patch = *req.Project
	}

	updated, err := h.svc.Update(c.Request.Context(), id, patch)
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
	case errors.Is(err, domain.ErrInvalidProject):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case err != nil:
		h.log.WithError(err).WithField("project_id", id).Error("update project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update project"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}

func (h *Handler) delete(c *gin.Context) {
	c.Header("Cache-Control", cacheNoStore)
	id := c.Param("id")
	addr := c.GetString(auth.CtxAdminAddress)

	if !auth.RequestIsAdmin(c) {
		h.log.WithFields(logrus.Fields{"project_id": id, "address": addr}).Warn("unauthorized delete attempt")
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
		return
	}

	ok, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		h.log.WithError(err).WithField("project_id", id).Error("delete project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete project"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
