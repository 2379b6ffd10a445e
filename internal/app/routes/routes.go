package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/derin/volunteerhub/internal/app/controllers"
	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/middleware"
	"github.com/derin/volunteerhub/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	eventController *controllers.EventController,
	notificationController *controllers.NotificationController,
	adminController *controllers.AdminController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	adminOnly := authMiddleware.RoleRequired(string(models.RoleAdmin))

	// --- Operational endpoints (top level, outside the API version group) ---
	router.GET("/health", adminController.HealthCheck)
	router.GET("/init", adminController.Init)
	router.GET("/stats", authMiddleware.JWTAuth(), adminOnly, adminController.GetStats)
	router.GET("/reports/:type", authMiddleware.JWTAuth(), adminOnly, adminController.GetReport)

	// Unknown paths answer with what the service can do
	router.NoRoute(capabilityListing)

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Profile routes
		users := authenticated.Group("/users")
		{
			users.GET("/me", userController.GetMyProfile)
			users.PUT("/me", userController.UpdateMyProfile)
		}

		// Event routes - catalog plus the participation ledger
		events := authenticated.Group("/events")
		{
			events.GET("", eventController.GetAllEvents)
			events.GET("/upcoming", eventController.GetUpcomingEvents)
			events.GET("/mine", eventController.GetMyEvents)
			events.GET("/:id", eventController.GetEventByID)
			events.GET("/:id/participants", eventController.GetEventParticipants)
			events.GET("/:id/counts", eventController.GetEventCounts)

			events.POST("/:id/join", eventController.JoinEvent)
			events.DELETE("/:id/leave", eventController.LeaveEvent)

			// Creation is admin only; update/delete authorization (creator or
			// admin) lives in the service, so no role middleware here
			events.POST("", eventController.CreateEvent)
			events.PUT("/:id", eventController.UpdateEvent)
			events.DELETE("/:id", eventController.DeleteEvent)

			eventsAdminProtected := events.Group("")
			eventsAdminProtected.Use(adminOnly)
			{
				eventsAdminProtected.POST("/:id/attendance/:volunteerId", eventController.RecordAttendance)
			}
		}

		// Notification routes
		notifications := authenticated.Group("/notifications")
		{
			notifications.GET("", notificationController.GetMyNotifications)
			notifications.GET("/unread-count", notificationController.GetUnreadCount)
			notifications.PUT("/:id/read", notificationController.MarkNotificationRead)
			notifications.PUT("/read-all", notificationController.MarkAllNotificationsRead)
			notifications.GET("/ws", wsHandler.HandleConnection)

			notificationsAdminProtected := notifications.Group("")
			notificationsAdminProtected.Use(adminOnly)
			{
				notificationsAdminProtected.POST("", notificationController.SendNotification)
			}
		}
	}
}

// capabilityListing answers unknown paths with the service's surface
func capabilityListing(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"message": "unknown path",
		"capabilities": []string{
			"GET /health",
			"GET /init",
			"GET /stats",
			"GET /reports/events",
			"GET /reports/volunteers",
			"POST /api/v1/auth/register",
			"POST /api/v1/auth/login",
			"POST /api/v1/auth/refresh",
			"GET /api/v1/users/me",
			"PUT /api/v1/users/me",
			"GET /api/v1/events",
			"GET /api/v1/events/upcoming",
			"GET /api/v1/events/mine",
			"POST /api/v1/events",
			"GET /api/v1/events/:id",
			"PUT /api/v1/events/:id",
			"DELETE /api/v1/events/:id",
			"POST /api/v1/events/:id/join",
			"DELETE /api/v1/events/:id/leave",
			"GET /api/v1/events/:id/participants",
			"GET /api/v1/events/:id/counts",
			"POST /api/v1/events/:id/attendance/:volunteerId",
			"GET /api/v1/notifications",
			"POST /api/v1/notifications",
			"GET /api/v1/notifications/unread-count",
			"PUT /api/v1/notifications/:id/read",
			"PUT /api/v1/notifications/read-all",
			"GET /api/v1/notifications/ws",
		},
	})
}
