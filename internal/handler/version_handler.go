package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/middleware"
	"github.com/pressdesk/editorial-backend/internal/repository"
	"github.com/pressdesk/editorial-backend/internal/service"
)

// VersionHandler handles content version requests
type VersionHandler struct {
	posts    repository.PostRepository
	versions *service.VersionService
}

// NewVersionHandler creates a new VersionHandler
func NewVersionHandler(posts repository.PostRepository, versions *service.VersionService) *VersionHandler {
	return &VersionHandler{posts: posts, versions: versions}
}

type createVersionRequest struct {
	VersionNote string `json:"version_note"`
}

// Create handles POST /api/v1/posts/:id/versions
// Captures the post's current content as a new draft version.
func (h *VersionHandler) Create(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	var req createVersionRequest
	_ = c.ShouldBindJSON(&req) // note is optional, body may be empty

	post, err := h.posts.FindByID(postID)
	if err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load post", err)
		return
	}

	version, err := h.versions.CreateVersion(post, middleware.GetActor(c), req.VersionNote)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create version", err)
		return
	}

	common.CreatedResponse(c, version.ToResponse(true))
}

// ListByPost handles GET /api/v1/posts/:id/versions
func (h *VersionHandler) ListByPost(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	if _, err := h.posts.FindByID(postID); err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to load post", err)
		return
	}

	versions, err := h.versions.ListVersions(postID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list versions", err)
		return
	}

	out := make([]*domain.VersionResponse, len(versions))
	for i, v := range versions {
		out[i] = v.ToResponse(false)
	}
	common.SuccessResponse(c, out, nil)
}

// GetForPost handles GET /api/v1/posts/:id/versions/:number
// The :number segment is a per-post version number, or "active" for the
// version currently live.
func (h *VersionHandler) GetForPost(c *gin.Context) {
	postID, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	var version *domain.ContentVersion
	if c.Param("number") == "active" {
		version, err = h.versions.GetActiveVersion(postID)
	} else {
		var number uint64
		number, err = strconv.ParseUint(c.Param("number"), 10, 32)
		if err != nil {
			common.ErrorResponse(c, http.StatusBadRequest, "Invalid version number", nil)
			return
		}
		version, err = h.versions.GetVersionByNumber(postID, uint(number))
	}
	if err != nil {
		switch {
		case errors.Is(err, common.ErrPostNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
		case errors.Is(err, common.ErrVersionNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "Version not found", nil)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "Failed to get version", err)
		}
		return
	}

	common.SuccessResponse(c, version.ToResponse(true), nil)
}

// Get handles GET /api/v1/versions/:id
func (h *VersionHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version ID", nil)
		return
	}

	version, err := h.versions.GetVersion(id)
	if err != nil {
		if errors.Is(err, common.ErrVersionNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Version not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to get version", err)
		return
	}

	common.SuccessResponse(c, version.ToResponse(true), nil)
}
