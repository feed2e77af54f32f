package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fundhub/internal/services"
	"fundhub/pkg/utils"
)

type NotificationsController struct {
	notificationService services.NotificationServiceInterface
	userService         services.UserServiceInterface
}

func NewNotificationsController(
	notificationService services.NotificationServiceInterface,
	userService services.UserServiceInterface,
) *NotificationsController {
	return &NotificationsController{
		notificationService: notificationService,
		userService:         userService,
	}
}

func (nc *NotificationsController) ListNotificationsHandler(c *gin.Context) {
	user, err := currentUser(c, nc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	resp, err := nc.notificationService.List(c.Request.Context(), user.ID, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Fetched notifications")
}

func (nc *NotificationsController) MarkReadHandler(c *gin.Context) {
	user, err := currentUser(c, nc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid notification id")
		return
	}

	if err := nc.notificationService.MarkRead(c.Request.Context(), id, user.ID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Notification marked as read")
}
