package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/internal/services"
	"fundhub/pkg/utils"
)

type MilestonesController struct {
	milestoneService services.MilestoneServiceInterface
	userService      services.UserServiceInterface
}

func NewMilestonesController(
	milestoneService services.MilestoneServiceInterface,
	userService services.UserServiceInterface,
) *MilestonesController {
	return &MilestonesController{
		milestoneService: milestoneService,
		userService:      userService,
	}
}

func (mc *MilestonesController) CreateMilestoneHandler(c *gin.Context) {
	user, err := currentUser(c, mc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	fundraiserID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid fundraiser id")
		return
	}

	var req request_models.CreateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := mc.milestoneService.Create(c.Request.Context(), fundraiserID, user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Milestone created")
}

func (mc *MilestonesController) UpdateMilestoneHandler(c *gin.Context) {
	user, fundraiserID, milestoneID, ok := mc.pathIDs(c)
	if !ok {
		return
	}

	var req request_models.UpdateMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := mc.milestoneService.Update(c.Request.Context(), fundraiserID, milestoneID, user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Milestone updated")
}

func (mc *MilestonesController) DeleteMilestoneHandler(c *gin.Context) {
	user, fundraiserID, milestoneID, ok := mc.pathIDs(c)
	if !ok {
		return
	}

	if err := mc.milestoneService.Delete(c.Request.Context(), fundraiserID, milestoneID, user.ID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Milestone deleted")
}

func (mc *MilestonesController) AchieveMilestoneHandler(c *gin.Context) {
	user, fundraiserID, milestoneID, ok := mc.pathIDs(c)
	if !ok {
		return
	}

	resp, err := mc.milestoneService.Achieve(c.Request.Context(), fundraiserID, milestoneID, user.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Milestone achieved")
}

func (mc *MilestonesController) ListMilestonesHandler(c *gin.Context) {
	fundraiserID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid fundraiser id")
		return
	}

	resp, err := mc.milestoneService.List(c.Request.Context(), fundraiserID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Fetched milestones")
}

func (mc *MilestonesController) pathIDs(c *gin.Context) (user *dbm.User, fundraiserID, milestoneID uuid.UUID, ok bool) {
	u, err := currentUser(c, mc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return nil, uuid.Nil, uuid.Nil, false
	}

	fID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid fundraiser id")
		return nil, uuid.Nil, uuid.Nil, false
	}

	mID, err := uuid.Parse(c.Param("milestoneId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid milestone id")
		return nil, uuid.Nil, uuid.Nil, false
	}
	return u, fID, mID, true
}
