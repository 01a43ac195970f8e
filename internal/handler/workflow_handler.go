package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/middleware"
	"github.com/pressdesk/editorial-backend/internal/repository"
	"github.com/pressdesk/editorial-backend/internal/service"
)

// WorkflowHandler handles workflow transition requests
type WorkflowHandler struct {
	workflow *service.WorkflowService
	versions *service.VersionService
	posts    repository.PostRepository
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(workflow *service.WorkflowService, versions *service.VersionService, posts repository.PostRepository) *WorkflowHandler {
	return &WorkflowHandler{workflow: workflow, versions: versions, posts: posts}
}

type transitionRequest struct {
	To      domain.Status `json:"to" binding:"required"`
	Comment string        `json:"comment"`
}

// Transition handles POST /api/v1/versions/:id/transition
func (h *WorkflowHandler) Transition(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version ID", nil)
		return
	}

	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	transition, err := h.workflow.Transition(id, req.To, middleware.GetActor(c), req.Comment)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	common.SuccessResponse(c, transition, nil)
}

// AvailableTransitions handles GET /api/v1/versions/:id/transitions
func (h *WorkflowHandler) AvailableTransitions(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version ID", nil)
		return
	}

	version, err := h.versions.GetVersion(id)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	post, err := h.posts.FindByID(version.PostID)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	transitions := h.workflow.AvailableTransitions(middleware.GetUserRoles(c), post, version)
	if transitions == nil {
		transitions = []domain.TransitionDef{}
	}
	common.SuccessResponse(c, transitions, nil)
}

// History handles GET /api/v1/versions/:id/history
func (h *WorkflowHandler) History(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version ID", nil)
		return
	}

	history, err := h.workflow.History(id)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	common.SuccessResponse(c, history, nil)
}

// Publish handles POST /api/v1/versions/:id/publish
func (h *WorkflowHandler) Publish(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version ID", nil)
		return
	}

	if !h.mayPublish(c, id) {
		return
	}

	if err := h.workflow.Publish(id); err != nil {
		writeWorkflowError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}

// MakeLive handles POST /api/v1/versions/:id/make-live
// Swaps which historical version is live on an already published post.
func (h *WorkflowHandler) MakeLive(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version ID", nil)
		return
	}

	if !h.mayPublish(c, id) {
		return
	}

	if err := h.workflow.MakeVersionLive(id); err != nil {
		writeWorkflowError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}

// Revert handles POST /api/v1/versions/:id/revert
// Forks a new draft version from the given version's snapshot.
func (h *WorkflowHandler) Revert(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid version ID", nil)
		return
	}

	version, err := h.workflow.RevertToVersion(id, middleware.GetActor(c))
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	common.CreatedResponse(c, version.ToResponse(true))
}

// Unpublish handles POST /api/v1/posts/:id/unpublish
func (h *WorkflowHandler) Unpublish(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid post ID", nil)
		return
	}

	if err := h.workflow.Unpublish(id); err != nil {
		writeWorkflowError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}

// mayPublish checks the configured publish roles for the version's post
// type; on failure it writes the error response itself.
func (h *WorkflowHandler) mayPublish(c *gin.Context, versionID uint64) bool {
	version, err := h.versions.GetVersion(versionID)
	if err != nil {
		writeWorkflowError(c, err)
		return false
	}
	post, err := h.posts.FindByID(version.PostID)
	if err != nil {
		writeWorkflowError(c, err)
		return false
	}
	if !h.workflow.CanPublish(middleware.GetUserRoles(c), post) {
		common.ErrorResponse(c, http.StatusForbidden, "Publishing requires an editorial role", nil)
		return false
	}
	return true
}

// writeWorkflowError maps workflow service errors to HTTP statuses.
func writeWorkflowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrPostNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Post not found", nil)
	case errors.Is(err, common.ErrVersionNotFound):
		common.ErrorResponse(c, http.StatusNotFound, "Version not found", nil)
	case errors.Is(err, common.ErrUnauthorizedTransition):
		common.ErrorResponse(c, http.StatusForbidden, err.Error(), nil)
	case errors.Is(err, common.ErrInvalidState):
		common.ErrorResponse(c, http.StatusConflict, err.Error(), nil)
	default:
		if _, ok := common.AsValidationError(err); ok {
			common.ErrorResponse(c, http.StatusUnprocessableEntity, "Validation failed", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Workflow operation failed", err)
	}
}
