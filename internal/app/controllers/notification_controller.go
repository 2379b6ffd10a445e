package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/derin/volunteerhub/internal/app/models"
	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/app/services"
	"github.com/derin/volunteerhub/internal/middleware"
)

// defaultNotificationLimit caps notification listings
const defaultNotificationLimit = 50

// NotificationController handles notification related operations
type NotificationController struct {
	notificationService services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
	}
}

// GetMyNotifications handles listing the caller's notifications
// @Summary List my notifications
// @Description Retrieves the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum rows" default(50)
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse} "Notifications retrieved"
// @Router /notifications [get]
func (c *NotificationController) GetMyNotifications(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	limit := defaultNotificationLimit
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= defaultNotificationLimit {
			limit = parsed
		}
	}

	notifications, err := c.notificationService.ListFor(ctx, userID, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notifications))
}

// SendNotification handles an admin sending a notification
// @Summary Send a notification
// @Description Stores the notification and pushes it to the recipient's live listeners. Admin only.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SendNotificationRequest true "Notification"
// @Success 201 {object} dto.APIResponse{data=dto.NotificationResponse} "Notification sent"
// @Failure 404 {object} dto.ErrorResponse "Recipient not found"
// @Router /notifications [post]
func (c *NotificationController) SendNotification(ctx *gin.Context) {
	var req dto.SendNotificationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	notification, err := c.notificationService.Send(ctx, req.RecipientID, req.Message, models.NotificationType(req.Type))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(notification))
}

// MarkNotificationRead handles flagging one notification read
// @Summary Mark a notification read
// @Description Only the recipient may mark their own notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Marked read"
// @Failure 403 {object} dto.ErrorResponse "Belongs to another recipient"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkNotificationRead(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	notificationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid notification ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.notificationService.MarkRead(ctx, notificationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Notification marked read"}))
}

// MarkAllNotificationsRead handles flagging all of the caller's notifications read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Marked read"
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllNotificationsRead(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	if err := c.notificationService.MarkAllRead(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "All notifications marked read"}))
}

// GetUnreadCount handles retrieving the caller's unread notification count
// @Summary Get unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Count retrieved"
// @Router /notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	count, err := c.notificationService.CountUnread(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"unreadCount": count}))
}
