package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

const slugAttempts = 3

type GroupServiceInterface interface {
	CreateGroup(ctx context.Context, owner *dbm.User, req request_models.CreateGroupRequest) (*response_models.GroupResponse, error)
	GetBySlug(ctx context.Context, slug string, callerID uuid.UUID) (*response_models.GroupResponse, error)
	UpdateGroup(ctx context.Context, groupID, callerID uuid.UUID, req request_models.UpdateGroupRequest) (*response_models.GroupResponse, error)
}

type GroupService struct {
	groupRepo repositories.GroupRepository
	authority GroupAuthority
}

func NewGroupService(groupRepo repositories.GroupRepository, authority GroupAuthority) GroupServiceInterface {
	return &GroupService{
		groupRepo: groupRepo,
		authority: authority,
	}
}

func (s *GroupService) CreateGroup(ctx context.Context, owner *dbm.User, req request_models.CreateGroupRequest) (*response_models.GroupResponse, error) {
	groupType := dbm.GroupType(req.Type)
	if groupType == dbm.GroupTypeNonprofit && req.EIN == "" {
		return nil, utils.Validationf("nonprofit groups require an EIN")
	}

	group := &dbm.Group{
		Name:    req.Name,
		Type:    groupType,
		OwnerID: owner.ID,
		EIN:     req.EIN,
	}

	// Insert under the unique constraint and retry with a fresh suffix on
	// collision rather than check-then-create.
	base := utils.Slugify(req.Name)
	slug := base
	var err error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		group.Slug = slug
		member := &dbm.GroupMember{
			UserID: &owner.ID,
			Role:   dbm.RoleOwner,
			Status: dbm.MemberStatusActive,
		}
		err = s.groupRepo.CreateWithOwner(ctx, group, member)
		if err == nil {
			resp := toGroupResponse(group)
			return &resp, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrDatabaseError
		}
		group.ID = uuid.Nil
		slug = utils.SlugWithSuffix(base)
	}
	return nil, utils.Conflictf("could not allocate a unique slug for %q", req.Name)
}

func (s *GroupService) GetBySlug(ctx context.Context, slug string, callerID uuid.UUID) (*response_models.GroupResponse, error) {
	group, err := s.groupRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.NotFoundf("group not found")
	}

	// Membership-gated: non-members get a deny, not a detail view.
	if _, _, err := s.authority.RequireMember(ctx, group.ID, callerID); err != nil {
		return nil, err
	}

	resp := toGroupResponse(group)
	return &resp, nil
}

func (s *GroupService) UpdateGroup(ctx context.Context, groupID, callerID uuid.UUID, req request_models.UpdateGroupRequest) (*response_models.GroupResponse, error) {
	group, caller, err := s.authority.RequireMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanManageMembers() {
		return nil, utils.PermissionDeniedf("only owners and admins can update the group profile")
	}

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.EIN != nil {
		group.EIN = *req.EIN
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toGroupResponse(group)
	return &resp, nil
}

func toGroupResponse(g *dbm.Group) response_models.GroupResponse {
	return response_models.GroupResponse{
		ID:        g.ID.String(),
		Name:      g.Name,
		Slug:      g.Slug,
		Type:      string(g.Type),
		OwnerID:   g.OwnerID.String(),
		Connected: g.StripeAccountID != nil,
		Verified:  g.Verified,
	}
}
