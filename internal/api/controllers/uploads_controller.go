package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fundhub/internal/models/request_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/services"
	"fundhub/pkg/utils"
)

type UploadsController struct {
	uploadService services.UploadServiceInterface
	userService   services.UserServiceInterface
}

func NewUploadsController(
	uploadService services.UploadServiceInterface,
	userService services.UserServiceInterface,
) *UploadsController {
	return &UploadsController{
		uploadService: uploadService,
		userService:   userService,
	}
}

func (uc *UploadsController) RegisterUploadHandler(c *gin.Context) {
	user, err := currentUser(c, uc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var req request_models.RegisterUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	upload, err := uc.uploadService.Register(c.Request.Context(), req.PublicID, user.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, response_models.UploadResponse{
		ID:       upload.ID.String(),
		PublicID: upload.PublicID,
		URL:      upload.URL,
		Format:   upload.Format,
		Bytes:    upload.Bytes,
	}, "Upload registered")
}

func (uc *UploadsController) DeleteUploadHandler(c *gin.Context) {
	user, err := currentUser(c, uc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid upload id")
		return
	}

	if err := uc.uploadService.Delete(c.Request.Context(), id, user.ID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Upload deleted")
}
