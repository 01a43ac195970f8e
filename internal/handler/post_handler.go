package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/middleware"
	"github.com/pressdesk/editorial-backend/internal/service"
)

// PostHandler handles post CRUD requests
type PostHandler struct {
	service service.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// List handles GET /api/v1/posts
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	postType := c.Query("type")
	workflowStatus := domain.Status(c.Query("workflow_status"))

	posts, meta, err := h.service.ListPosts(postType, workflowStatus, page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list posts", err)
		return
	}

	common.SuccessResponse(c, posts, meta)
}

// Get handles GET /api/v1/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	post, err := h.service.GetPost(id)
	if err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to get post", err)
		return
	}

	common.SuccessResponse(c, post, nil)
}

// Create handles POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req domain.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.service.CreatePost(&req, middleware.GetActor(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to create post", err)
		return
	}

	common.CreatedResponse(c, post)
}

// Update handles PUT /api/v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	var req domain.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	post, err := h.service.UpdatePost(id, &req, middleware.GetActor(c))
	if err != nil {
		if errors.Is(err, common.ErrPostNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
			return
		}
		if errors.Is(err, common.ErrForbidden) {
			common.ErrorResponse(c, http.StatusForbidden, "Editing a published post requires an editorial role", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to update post", err)
		return
	}

	common.SuccessResponse(c, post, nil)
}

// parseID reads a uint64 path parameter
func parseID(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
