package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/pressdesk/editorial-backend/internal/domain"
	"github.com/pressdesk/editorial-backend/internal/handler"
	"github.com/pressdesk/editorial-backend/internal/middleware"
	"github.com/pressdesk/editorial-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	postHandler *handler.PostHandler,
	versionHandler *handler.VersionHandler,
	workflowHandler *handler.WorkflowHandler,
	notificationHandler *handler.NotificationHandler,
	adminHandler *handler.AdminHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Posts
	posts := api.Group("/posts")
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", middleware.JWTAuth(jwtManager), postHandler.Create)
	posts.PUT("/:id", middleware.JWTAuth(jwtManager), postHandler.Update)
	posts.POST("/:id/unpublish", middleware.JWTAuth(jwtManager), workflowHandler.Unpublish)

	// Versions nested under a post
	posts.GET("/:id/versions", versionHandler.ListByPost)
	posts.GET("/:id/versions/:number", versionHandler.GetForPost)
	posts.POST("/:id/versions", middleware.JWTAuth(jwtManager), versionHandler.Create)

	// Versions addressed directly
	versions := api.Group("/versions")
	versions.GET("/:id", versionHandler.Get)
	versions.GET("/:id/history", workflowHandler.History)
	versions.GET("/:id/transitions", middleware.JWTAuth(jwtManager), workflowHandler.AvailableTransitions)
	versions.POST("/:id/transition", middleware.JWTAuth(jwtManager), workflowHandler.Transition)
	versions.POST("/:id/publish", middleware.JWTAuth(jwtManager), workflowHandler.Publish)
	versions.POST("/:id/make-live", middleware.JWTAuth(jwtManager), workflowHandler.MakeLive)
	versions.POST("/:id/revert", middleware.JWTAuth(jwtManager), workflowHandler.Revert)

	// Notifications (auth required)
	notifications := api.Group("/notifications", middleware.JWTAuth(jwtManager))
	notifications.GET("", notificationHandler.GetList)
	notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
	notifications.POST("/:id/read", notificationHandler.MarkAsRead)
	notifications.POST("/read-all", notificationHandler.MarkAllAsRead)
	notifications.DELETE("/:id", notificationHandler.Delete)

	// Admin: workflow configuration per post type
	admin := api.Group("/admin", middleware.JWTAuth(jwtManager), middleware.RequireRole(domain.RoleAdmin))
	admin.GET("/workflow-config/:postType", adminHandler.GetWorkflowConfig)
	admin.PUT("/workflow-config/:postType", adminHandler.UpdateWorkflowConfig)
	admin.GET("/settings", adminHandler.ListSettings)
}
