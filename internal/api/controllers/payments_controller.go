package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fundhub/internal/models/request_models"
	"fundhub/internal/services"
	"fundhub/pkg/utils"
)

type PaymentsController struct {
	paymentService services.PaymentServiceInterface
	userService    services.UserServiceInterface
}

func NewPaymentsController(
	paymentService services.PaymentServiceInterface,
	userService services.UserServiceInterface,
) *PaymentsController {
	return &PaymentsController{
		paymentService: paymentService,
		userService:    userService,
	}
}

func (pc *PaymentsController) ConnectAccountHandler(c *gin.Context) {
	user, err := currentUser(c, pc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var req request_models.ConnectAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid group id")
		return
	}

	resp, err := pc.paymentService.ConnectAccount(c.Request.Context(), groupID, user)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Connected account ready")
}

func (pc *PaymentsController) WebhookHandler(c *gin.Context) {
	pc.paymentService.HandleWebhook(c)
}
