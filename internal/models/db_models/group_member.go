package db_models

import "github.com/google/uuid"

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleAdmin  MemberRole = "admin"
	RoleEditor MemberRole = "editor"
	RoleViewer MemberRole = "viewer"
)

type MemberStatus string

const (
	MemberStatusInvited MemberStatus = "invited"
	MemberStatusActive  MemberStatus = "active"
)

var roleRank = map[MemberRole]int{
	RoleViewer: 0,
	RoleEditor: 1,
	RoleAdmin:  2,
	RoleOwner:  3,
}

func (r MemberRole) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// CanManageMembers covers group-profile updates, invites, role changes,
// removals and verification requests.
func (r MemberRole) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

// CanEditFundraisers covers fundraiser/milestone/gallery mutations and
// publish/unpublish.
func (r MemberRole) CanEditFundraisers() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleEditor
}

// Dominates reports strict dominance in the lattice; an admin does not
// dominate another admin.
func (r MemberRole) Dominates(other MemberRole) bool {
	return roleRank[r] > roleRank[other]
}

// GroupMember joins a user to a group. UserID stays nil for email invites
// until the invitee registers; the (user_id, group_id) pair is unique when
// user_id is set.
type GroupMember struct {
	BaseModel
	GroupID     uuid.UUID    `gorm:"index;uniqueIndex:idx_group_user"`
	UserID      *uuid.UUID   `gorm:"uniqueIndex:idx_group_user"`
	InviteEmail string       `gorm:"index"`
	Role        MemberRole   `gorm:"size:16"`
	Status      MemberStatus `gorm:"size:16;index"`

	User *User `gorm:"foreignKey:UserID"`
}
