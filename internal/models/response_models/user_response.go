package response_models

type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name"`
	AccountType   string `json:"account_type"`
	SetupComplete bool   `json:"setup_complete"`
}
