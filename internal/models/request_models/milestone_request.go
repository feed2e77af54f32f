package request_models

type CreateMilestoneRequest struct {
	StepNumber int     `json:"step_number" binding:"required,gt=0"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Title      string  `json:"title" binding:"required,min=2,max=160"`
	Purpose    string  `json:"purpose" binding:"omitempty"`
}

type UpdateMilestoneRequest struct {
	StepNumber *int     `json:"step_number" binding:"omitempty,gt=0"`
	Amount     *float64 `json:"amount" binding:"omitempty,gt=0"`
	Title      *string  `json:"title" binding:"omitempty,min=2,max=160"`
	Purpose    *string  `json:"purpose" binding:"omitempty"`
}
