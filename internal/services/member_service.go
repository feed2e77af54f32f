package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	dbm "fundhub/internal/models/db_models"
	"fundhub/internal/models/request_models"
	"fundhub/internal/models/response_models"
	"fundhub/internal/repositories"
	"fundhub/pkg/utils"
)

// GroupAuthority is the narrow membership gate the fundraiser and donation
// services depend on, so they never need the full member service.
type GroupAuthority interface {
	// RequireMember loads the group and the caller's active membership.
	// A missing group is NotFound; a missing or non-active membership is
	// PermissionDenied, so non-members never learn more than the deny.
	RequireMember(ctx context.Context, groupID, userID uuid.UUID) (*dbm.Group, *dbm.GroupMember, error)
}

type MemberServiceInterface interface {
	GroupAuthority
	ListMembers(ctx context.Context, groupID, callerID uuid.UUID) ([]response_models.MemberResponse, error)
	Invite(ctx context.Context, groupID, callerID uuid.UUID, req request_models.InviteMemberRequest) (*response_models.MemberResponse, error)
	AcceptInvite(ctx context.Context, groupID uuid.UUID, user *dbm.User) (*response_models.MemberResponse, error)
	UpdateRole(ctx context.Context, groupID, memberID, callerID uuid.UUID, newRole dbm.MemberRole) (*response_models.MemberResponse, error)
	Remove(ctx context.Context, groupID, memberID, callerID uuid.UUID) error
}

type MemberService struct {
	groupRepo     repositories.GroupRepository
	memberRepo    repositories.MemberRepository
	userRepo      repositories.UserRepository
	notifications NotificationServiceInterface
}

func NewMemberService(
	groupRepo repositories.GroupRepository,
	memberRepo repositories.MemberRepository,
	userRepo repositories.UserRepository,
	notifications NotificationServiceInterface,
) MemberServiceInterface {
	return &MemberService{
		groupRepo:     groupRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *MemberService) RequireMember(ctx context.Context, groupID, userID uuid.UUID) (*dbm.Group, *dbm.GroupMember, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, nil, utils.NotFoundf("group not found")
	}

	member, err := s.memberRepo.FindByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if member == nil || member.Status != dbm.MemberStatusActive {
		return nil, nil, utils.PermissionDeniedf("you are not a member of this group")
	}

	return group, member, nil
}

func (s *MemberService) ListMembers(ctx context.Context, groupID, callerID uuid.UUID) ([]response_models.MemberResponse, error) {
	if _, _, err := s.RequireMember(ctx, groupID, callerID); err != nil {
		return nil, err
	}

	members, err := s.memberRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, toMemberResponse(&m))
	}
	return responses, nil
}

func (s *MemberService) Invite(ctx context.Context, groupID, callerID uuid.UUID, req request_models.InviteMemberRequest) (*response_models.MemberResponse, error) {
	_, caller, err := s.RequireMember(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanManageMembers() {
		return nil, utils.PermissionDeniedf("only owners and admins can invite members")
	}

	role := dbm.MemberRole(req.Role)
	if role == dbm.RoleOwner {
		return nil, utils.Validationf("cannot invite users with owner role")
	}
	if !role.Valid() {
		return nil, utils.Validationf("invalid role %q", req.Role)
	}

	hasEmail := req.Email != ""
	hasUserID := req.UserID != ""
	if hasEmail == hasUserID {
		return nil, utils.Validationf("exactly one of email or user_id must be provided")
	}

	member := &dbm.GroupMember{
		GroupID: groupID,
		Role:    role,
		Status:  dbm.MemberStatusInvited,
	}

	if hasUserID {
		userID, parseErr := uuid.Parse(req.UserID)
		if parseErr != nil {
			return nil, utils.Validationf("invalid user_id")
		}
		user, findErr := s.userRepo.FindByID(ctx, userID)
		if findErr != nil {
			return nil, utils.ErrDatabaseError
		}
		if user == nil {
			return nil, utils.NotFoundf("user not found")
		}

		existing, findErr := s.memberRepo.FindByGroupAndUser(ctx, groupID, userID)
		if findErr != nil {
			return nil, utils.ErrDatabaseError
		}
		if existing != nil {
			return nil, utils.Conflictf("user is already a member or has a pending invite")
		}

		member.UserID = &userID
		member.InviteEmail = user.Email
	} else {
		// Stored emails are lowercase (SyncUser), so the invite must be
		// too or AcceptInvite can never match it.
		email := strings.ToLower(req.Email)

		existing, findErr := s.memberRepo.FindInviteByEmail(ctx, groupID, email)
		if findErr != nil {
			return nil, utils.ErrDatabaseError
		}
		if existing != nil {
			return nil, utils.Conflictf("an invite for this email already exists")
		}

		// The email may belong to a known user whose membership row
		// carries no invite email, like the owner row created with the
		// group. Resolve it and run the same membership check as the
		// user_id branch.
		user, findErr := s.userRepo.FindByEmail(ctx, email)
		if findErr != nil {
			return nil, utils.ErrDatabaseError
		}
		if user != nil {
			existing, findErr := s.memberRepo.FindByGroupAndUser(ctx, groupID, user.ID)
			if findErr != nil {
				return nil, utils.ErrDatabaseError
			}
			if existing != nil {
				return nil, utils.Conflictf("user is already a member or has a pending invite")
			}
		}

		member.InviteEmail = email
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if member.UserID != nil {
		s.notifications.Notify(ctx, *member.UserID, dbm.NotificationMemberInvited,
			"You have been invited to join a group", map[string]any{"group_id": groupID})
	}

	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *MemberService) AcceptInvite(ctx context.Context, groupID uuid.UUID, user *dbm.User) (*response_models.MemberResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if group == nil {
		return nil, utils.NotFoundf("group not found")
	}

	member, err := s.memberRepo.FindByGroupAndUser(ctx, groupID, user.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if member == nil {
		// Email invites carry no user id until the invitee shows up.
		member, err = s.memberRepo.FindInviteByEmail(ctx, groupID, user.Email)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
	}
	if member == nil {
		return nil, utils.NotFoundf("no invite found for this group")
	}
	if member.Status != dbm.MemberStatusInvited {
		return nil, utils.PreconditionFailedf("invite has already been accepted")
	}

	member.UserID = &user.ID
	member.Status = dbm.MemberStatusActive
	if err := s.memberRepo.Save(ctx, member); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.notifications.Notify(ctx, group.OwnerID, dbm.NotificationInviteAccepted,
		user.DisplayName+" joined your group", map[string]any{"group_id": groupID})

	resp := toMemberResponse(member)
	return &resp, nil
}

func (s *MemberService) UpdateRole(ctx context.Context, groupID, memberID, callerID uuid.UUID, newRole dbm.MemberRole) (*response_models.MemberResponse, error) {
	target, caller, err := s.resolveManagement(ctx, groupID, memberID, callerID)
	if err != nil {
		return nil, err
	}

	if newRole == dbm.RoleOwner {
		return nil, utils.Validationf("cannot grant the owner role")
	}
	if !newRole.Valid() {
		return nil, utils.Validationf("invalid role %q", newRole)
	}
	if caller.Role == dbm.RoleAdmin && !caller.Role.Dominates(target.Role) {
		return nil, utils.PermissionDeniedf("admins can only modify editors and viewers")
	}

	target.Role = newRole
	if err := s.memberRepo.Save(ctx, target); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := toMemberResponse(target)
	return &resp, nil
}

func (s *MemberService) Remove(ctx context.Context, groupID, memberID, callerID uuid.UUID) error {
	target, caller, err := s.resolveManagement(ctx, groupID, memberID, callerID)
	if err != nil {
		return err
	}

	if caller.Role == dbm.RoleAdmin && !caller.Role.Dominates(target.Role) {
		return utils.PermissionDeniedf("admins can only remove editors and viewers")
	}

	if err := s.memberRepo.Delete(ctx, target.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// resolveManagement applies the rules shared by role changes and removals:
// caller must be owner/admin, the target must belong to the group, may not
// be the caller, and may never be the owner.
func (s *MemberService) resolveManagement(ctx context.Context, groupID, memberID, callerID uuid.UUID) (*dbm.GroupMember, *dbm.GroupMember, error) {
	_, caller, err := s.RequireMember(ctx, groupID, callerID)
	if err != nil {
		return nil, nil, err
	}
	if !caller.Role.CanManageMembers() {
		return nil, nil, utils.PermissionDeniedf("only owners and admins can manage members")
	}

	target, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if target == nil || target.GroupID != groupID {
		return nil, nil, utils.NotFoundf("member not found")
	}
	if target.ID == caller.ID {
		return nil, nil, utils.PermissionDeniedf("you cannot modify your own membership")
	}
	if target.Role == dbm.RoleOwner {
		return nil, nil, utils.PermissionDeniedf("the owner's membership cannot be modified")
	}

	return target, caller, nil
}

func toMemberResponse(m *dbm.GroupMember) response_models.MemberResponse {
	resp := response_models.MemberResponse{
		ID:     m.ID.String(),
		Email:  m.InviteEmail,
		Role:   string(m.Role),
		Status: string(m.Status),
	}
	if m.UserID != nil {
		resp.UserID = m.UserID.String()
	}
	if m.User != nil {
		resp.DisplayName = m.User.DisplayName
		resp.Email = m.User.Email
	}
	return resp
}
