package request_models

type CreateDonationRequest struct {
	FundraiserID string  `json:"fundraiser_id" binding:"required,uuid4"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Currency     string  `json:"currency" binding:"omitempty,len=3"`
	LinkAlias    string  `json:"link_alias" binding:"omitempty,max=64"`
	Message      string  `json:"message" binding:"omitempty,max=500"`
	DisplayName  string  `json:"display_name" binding:"omitempty,max=120"`
	IsAnonymous  bool    `json:"is_anonymous"`
}
