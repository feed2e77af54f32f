package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fundhub/internal/models/request_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/services"
	"fundhub/pkg/utils"
)

type UsersController struct {
	userService services.UserServiceInterface
}

func NewUsersController(userService services.UserServiceInterface) *UsersController {
	return &UsersController{userService: userService}
}

// SyncHandler maps the verified principal to a local user, creating it on
// first sight.
func (uc *UsersController) SyncHandler(c *gin.Context) {
	user, err := currentUser(c, uc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.UserResponse{
		ID:            user.ID.String(),
		Email:         user.Email,
		DisplayName:   user.DisplayName,
		AccountType:   string(user.AccountType),
		SetupComplete: user.SetupComplete,
	}, "User synced")
}

func (uc *UsersController) UpdateProfileHandler(c *gin.Context) {
	user, err := currentUser(c, uc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := uc.userService.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Profile updated")
}

func (uc *UsersController) CompleteSetupHandler(c *gin.Context) {
	user, err := currentUser(c, uc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp, err := uc.userService.CompleteSetup(c.Request.Context(), user.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Setup completed")
}
