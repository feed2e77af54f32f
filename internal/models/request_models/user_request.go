package request_models

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=2,max=80"`
	AccountType *string `json:"account_type" binding:"omitempty,oneof=individual team nonprofit"`
}
