package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/middleware"
	"github.com/pressdesk/editorial-backend/internal/repository"
	"github.com/pressdesk/editorial-backend/internal/service"
)

// AdminHandler handles admin workflow configuration requests
type AdminHandler struct {
	config   *service.WorkflowConfigService
	settings repository.SettingRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(config *service.WorkflowConfigService, settings repository.SettingRepository) *AdminHandler {
	return &AdminHandler{config: config, settings: settings}
}

// ListSettings handles GET /api/v1/admin/settings
func (h *AdminHandler) ListSettings(c *gin.Context) {
	settings, err := h.settings.GetAll()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list settings", err)
		return
	}
	common.SuccessResponse(c, settings, nil)
}

// GetWorkflowConfig handles GET /api/v1/admin/workflow-config/:postType
// Returns the effective config for a post type, falling back to the
// default config when no override is stored.
func (h *AdminHandler) GetWorkflowConfig(c *gin.Context) {
	postType := c.Param("postType")
	cfg := h.config.Resolve(postType)
	common.SuccessResponse(c, cfg, nil)
}

// UpdateWorkflowConfig handles PUT /api/v1/admin/workflow-config/:postType
func (h *AdminHandler) UpdateWorkflowConfig(c *gin.Context) {
	postType := c.Param("postType")

	var cfg domain.WorkflowConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(cfg.Transitions) == 0 {
		common.ErrorResponse(c, http.StatusBadRequest, "Config must define at least one transition", nil)
		return
	}

	if err := h.config.Save(postType, &cfg, middleware.GetUserID(c)); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to save workflow config", err)
		return
	}

	common.SuccessResponse(c, cfg, nil)
}
