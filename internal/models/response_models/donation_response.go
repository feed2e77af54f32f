package response_models

type CreateDonationResponse struct {
	DonationID   string  `json:"donation_id"`
	ClientSecret string  `json:"client_secret"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

type DonationResponse struct {
	ID          string  `json:"id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	DisplayName string  `json:"display_name,omitempty"`
	Message     string  `json:"message,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   int64   `json:"created_at"`
}

type ConnectAccountResponse struct {
	AccountID     string `json:"account_id"`
	OnboardingURL string `json:"onboarding_url"`
}

type UploadResponse struct {
	ID       string `json:"id"`
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
	Format   string `json:"format,omitempty"`
	Bytes    int64  `json:"bytes,omitempty"`
}

type NotificationResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt int64  `json:"created_at"`
}
