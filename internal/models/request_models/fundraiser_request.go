package request_models

type CreateFundraiserRequest struct {
	Title         string  `json:"title" binding:"required,min=3,max=160"`
	Summary       string  `json:"summary" binding:"omitempty,max=280"`
	Description   string  `json:"description" binding:"omitempty"`
	Category      string  `json:"category" binding:"required"`
	GoalAmount    float64 `json:"goal_amount" binding:"required,gt=0"`
	Currency      string  `json:"currency" binding:"omitempty,len=3"`
	EndDate       *string `json:"end_date" binding:"omitempty"` // RFC3339
	CoverPublicID string  `json:"cover_public_id" binding:"omitempty"`
}

type UpdateFundraiserRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=3,max=160"`
	Summary       *string  `json:"summary" binding:"omitempty,max=280"`
	Description   *string  `json:"description" binding:"omitempty"`
	Category      *string  `json:"category" binding:"omitempty"`
	GoalAmount    *float64 `json:"goal_amount" binding:"omitempty,gt=0"`
	EndDate       *string  `json:"end_date" binding:"omitempty"`
	CoverPublicID *string  `json:"cover_public_id" binding:"omitempty"`
	IsPublic      *bool    `json:"is_public" binding:"omitempty"`
}

type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

type CreateLinkRequest struct {
	Alias string `json:"alias" binding:"required,min=3,max=64"`
	Label string `json:"label" binding:"omitempty,max=120"`
}

type AddGalleryItemRequest struct {
	PublicID string `json:"public_id" binding:"required"`
	Position int    `json:"position" binding:"omitempty,gte=0"`
}
