package response_models

type GroupResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Type      string `json:"type"`
	OwnerID   string `json:"owner_id"`
	Connected bool   `json:"connected"`
	Verified  bool   `json:"verified"`
}

type MemberResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}
