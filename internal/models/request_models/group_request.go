package request_models

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=2,max=120"`
	Type string `json:"type" binding:"required,oneof=individual team nonprofit"`
	EIN  string `json:"ein" binding:"omitempty,max=32"`
}

type UpdateGroupRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=120"`
	EIN  *string `json:"ein" binding:"omitempty,max=32"`
}

type InviteMemberRequest struct {
	Email  string `json:"email" binding:"omitempty,email"`
	UserID string `json:"user_id" binding:"omitempty,uuid4"`
	Role   string `json:"role" binding:"required,oneof=owner admin editor viewer"`
}

type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin editor viewer"`
}
