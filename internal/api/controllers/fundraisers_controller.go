package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/internal/services"
	"fundhub/pkg/utils"
)

type FundraisersController struct {
	fundraiserService services.FundraiserServiceInterface
	userService       services.UserServiceInterface
}

func NewFundraisersController(
	fundraiserService services.FundraiserServiceInterface,
	userService services.UserServiceInterface,
) *FundraisersController {
	return &FundraisersController{
		fundraiserService: fundraiserService,
		userService:       userService,
	}
}

func (fc *FundraisersController) CreateFundraiserHandler(c *gin.Context) {
	user, groupID, ok := fc.callerAndID(c, "id")
	if !ok {
		return
	}

	var req request_models.CreateFundraiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := fc.fundraiserService.Create(c.Request.Context(), groupID, user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Fundraiser created")
}

func (fc *FundraisersController) UpdateFundraiserHandler(c *gin.Context) {
	user, fundraiserID, ok := fc.callerAndID(c, "id")
	if !ok {
		return
	}

	var req request_models.UpdateFundraiserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := fc.fundraiserService.Update(c.Request.Context(), fundraiserID, user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Fundraiser updated")
}

func (fc *FundraisersController) PublishHandler(c *gin.Context) {
	user, fundraiserID, ok := fc.callerAndID(c, "id")
	if !ok {
		return
	}

	var req request_models.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Published == nil {
		utils.RespondError(c, http.StatusBadRequest, "published flag is required")
		return
	}

	resp, err := fc.fundraiserService.SetPublished(c.Request.Context(), fundraiserID, user.ID, *req.Published)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Fundraiser publish state updated")
}

func (fc *FundraisersController) DeleteFundraiserHandler(c *gin.Context) {
	user, fundraiserID, ok := fc.callerAndID(c, "id")
	if !ok {
		return
	}

	if err := fc.fundraiserService.Delete(c.Request.Context(), fundraiserID, user.ID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Fundraiser deleted")
}

// GetPublicHandler serves the unauthenticated detail page.
func (fc *FundraisersController) GetPublicHandler(c *gin.Context) {
	resp, err := fc.fundraiserService.GetPublicBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Fetched fundraiser")
}

func (fc *FundraisersController) ListPublicHandler(c *gin.Context) {
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

	list, err := fc.fundraiserService.ListPublic(c.Request.Context(), c.Query("category"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Fetched fundraisers")
}

func (fc *FundraisersController) ListGroupFundraisersHandler(c *gin.Context) {
	user, groupID, ok := fc.callerAndID(c, "id")
	if !ok {
		return
	}

	list, err := fc.fundraiserService.ListByGroup(c.Request.Context(), groupID, user.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Fetched fundraisers")
}

func (fc *FundraisersController) CreateLinkHandler(c *gin.Context) {
	user, fundraiserID, ok := fc.callerAndID(c, "id")
	if !ok {
		return
	}

	var req request_models.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := fc.fundraiserService.CreateLink(c.Request.Context(), fundraiserID, user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Link created")
}

func (fc *FundraisersController) AddGalleryItemHandler(c *gin.Context) {
	user, fundraiserID, ok := fc.callerAndID(c, "id")
	if !ok {
		return
	}

	var req request_models.AddGalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := fc.fundraiserService.AddGalleryItem(c.Request.Context(), fundraiserID, user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Gallery item added")
}

func (fc *FundraisersController) RemoveGalleryItemHandler(c *gin.Context) {
	user, fundraiserID, ok := fc.callerAndID(c, "id")
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid gallery item id")
		return
	}

	if err := fc.fundraiserService.RemoveGalleryItem(c.Request.Context(), fundraiserID, itemID, user.ID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Gallery item removed")
}

func (fc *FundraisersController) callerAndID(c *gin.Context, param string) (*dbm.User, uuid.UUID, bool) {
	user, err := currentUser(c, fc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return nil, uuid.Nil, false
	}

	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid id")
		return nil, uuid.Nil, false
	}
	return user, id, true
}
