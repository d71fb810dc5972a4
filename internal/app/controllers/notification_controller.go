package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

type NotificationController struct {
	notificationService services.NotificationService
}

func NewNotificationController(notificationService services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListNotifications lists notifications, newest first
// @Summary List notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=[]dto.NotificationResponse} "Notifications"
// @Router /notification/ [get]
func (c *NotificationController) ListNotifications(ctx *gin.Context) {
	notifications, err := c.notificationService.ListNotifications(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, notifications, "")
}

// MarkAsRead flags a notification as read
// @Summary Mark notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.SuccessResponse "Marked as read"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notification/{id}/read/ [post]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	id, err := helpers.ParseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.notificationService.MarkAsRead(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Notification marked as read")
}
