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

type GroupsController struct {
	groupService  services.GroupServiceInterface
	memberService services.MemberServiceInterface
	userService   services.UserServiceInterface
}

func NewGroupsController(
	groupService services.GroupServiceInterface,
	memberService services.MemberServiceInterface,
	userService services.UserServiceInterface,
) *GroupsController {
	return &GroupsController{
		groupService:  groupService,
		memberService: memberService,
		userService:   userService,
	}
}

func (gc *GroupsController) CreateGroupHandler(c *gin.Context) {
	user, err := currentUser(c, gc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var req request_models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := gc.groupService.CreateGroup(c.Request.Context(), user, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Group created")
}

func (gc *GroupsController) GetGroupHandler(c *gin.Context) {
	user, err := currentUser(c, gc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	resp, err := gc.groupService.GetBySlug(c.Request.Context(), c.Param("slug"), user.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Fetched group")
}

func (gc *GroupsController) UpdateGroupHandler(c *gin.Context) {
	user, groupID, ok := gc.callerAndGroup(c)
	if !ok {
		return
	}

	var req request_models.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := gc.groupService.UpdateGroup(c.Request.Context(), groupID, user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Group updated")
}

func (gc *GroupsController) ListMembersHandler(c *gin.Context) {
	user, groupID, ok := gc.callerAndGroup(c)
	if !ok {
		return
	}

	members, err := gc.memberService.ListMembers(c.Request.Context(), groupID, user.ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, members, "Fetched members")
}

func (gc *GroupsController) InviteMemberHandler(c *gin.Context) {
	user, groupID, ok := gc.callerAndGroup(c)
	if !ok {
		return
	}

	var req request_models.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := gc.memberService.Invite(c.Request.Context(), groupID, user.ID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, resp, "Member invited")
}

func (gc *GroupsController) AcceptInviteHandler(c *gin.Context) {
	user, groupID, ok := gc.callerAndGroup(c)
	if !ok {
		return
	}

	resp, err := gc.memberService.AcceptInvite(c.Request.Context(), groupID, user)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Invite accepted")
}

func (gc *GroupsController) UpdateMemberRoleHandler(c *gin.Context) {
	user, groupID, ok := gc.callerAndGroup(c)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	var req request_models.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := gc.memberService.UpdateRole(c.Request.Context(), groupID, memberID, user.ID, dbm.MemberRole(req.Role))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, resp, "Member role updated")
}

func (gc *GroupsController) RemoveMemberHandler(c *gin.Context) {
	user, groupID, ok := gc.callerAndGroup(c)
	if !ok {
		return
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid member id")
		return
	}

	if err := gc.memberService.Remove(c.Request.Context(), groupID, memberID, user.ID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member removed")
}

func (gc *GroupsController) callerAndGroup(c *gin.Context) (*dbm.User, uuid.UUID, bool) {
	user, err := currentUser(c, gc.userService)
	if err != nil {
		utils.HandleServiceError(c, err)
		return nil, uuid.Nil, false
	}

	groupID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid group id")
		return nil, uuid.Nil, false
	}
	return user, groupID, true
}
