package request_models

type ConnectAccountRequest struct {
	GroupID string `json:"group_id" binding:"required,uuid4"`
}

type RegisterUploadRequest struct {
	PublicID string `json:"public_id" binding:"required,max=255"`
}
