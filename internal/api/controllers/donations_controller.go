package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fundhub/internal/models/request_models"
	"fundhub/internal/services"
	"fundhub/pkg/utils"
)

type DonationsController struct {
	donationService services.DonationServiceInterface
	userService     services.UserServiceInterface
}

func NewDonationsController(
	donationService services.DonationServiceInterface,
	userService services.UserServiceInterface,
) *DonationsController {
	return &DonationsController{
		donationService: donationService,
		userService:     userService,
	}
}

// CreateDonationHandler accepts both guests and signed-in donors.
func (dc *DonationsController) CreateDonationHandler(c *gin.Context) {
	var req request_models.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	donor := optionalUser(c, dc.userService)

	resp, err := dc.donationService.CreateDonation(c.Request.Context(), donor, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Donation created")
}

func (dc *DonationsController) ListDonationsHandler(c *gin.Context) {
	fundraiserID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid fundraiser id")
		return
	}

	caller := optionalUser(c, dc.userService)

	resp, err := dc.donationService.ListForFundraiser(c.Request.Context(), fundraiserID, caller)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Fetched donations")
}
