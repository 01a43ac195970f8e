package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pressdesk/editorial-backend/internal/common"
	"github.com/pressdesk/editorial-backend/internal/middleware"
	"github.com/pressdesk/editorial-backend/internal/service"
)

// NotificationHandler handles notification requests
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetUnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	memberID := middleware.GetUserID(c)
	summary, err := h.service.GetUnreadCount(memberID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to count notifications", err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: summary})
}

// GetList handles GET /api/v1/notifications
func (h *NotificationHandler) GetList(c *gin.Context) {
	memberID := middleware.GetUserID(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.GetList(memberID, page, limit)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to list notifications", err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: result})
}

// MarkAsRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	memberID := middleware.GetUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	if err := h.service.MarkAsRead(memberID, id); err != nil {
		if err.Error() == "notification not found" {
			common.ErrorResponse(c, http.StatusNotFound, "Notification not found", nil)
			return
		}
		if err.Error() == "forbidden" {
			common.ErrorResponse(c, http.StatusForbidden, "Forbidden", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark notification as read", err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"success": true}})
}

// MarkAllAsRead handles POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	memberID := middleware.GetUserID(c)
	if err := h.service.MarkAllAsRead(memberID); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to mark all notifications as read", err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"success": true}})
}

// Delete handles DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	memberID := middleware.GetUserID(c)
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	if err := h.service.Delete(memberID, id); err != nil {
		if err.Error() == "notification not found" {
			common.ErrorResponse(c, http.StatusNotFound, "Notification not found", nil)
			return
		}
		if err.Error() == "forbidden" {
			common.ErrorResponse(c, http.StatusForbidden, "Forbidden", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to delete notification", err)
		return
	}

	c.JSON(http.StatusOK, common.APIResponse{Data: gin.H{"success": true}})
}
