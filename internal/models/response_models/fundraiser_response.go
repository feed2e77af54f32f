package response_models

type ProgressResponse struct {
	TotalRaised        float64 `json:"total_raised"`
	DonationCount      int64   `json:"donation_count"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

type FundraiserResponse struct {
	ID          string            `json:"id"`
	GroupID     string            `json:"group_id"`
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Summary     string            `json:"summary,omitempty"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category"`
	GoalAmount  float64           `json:"goal_amount"`
	Currency    string            `json:"currency"`
	EndDate     string            `json:"end_date,omitempty"`
	CoverURL    string            `json:"cover_url,omitempty"`
	Status      string            `json:"status"`
	IsPublic    bool              `json:"is_public"`
	Progress    *ProgressResponse `json:"progress,omitempty"`
}

type MilestoneResponse struct {
	ID         string  `json:"id"`
	StepNumber int     `json:"step_number"`
	Amount     float64 `json:"amount"`
	Title      string  `json:"title"`
	Purpose    string  `json:"purpose,omitempty"`
	Achieved   bool    `json:"achieved"`
	AchievedAt int64   `json:"achieved_at,omitempty"`
}

type GalleryItemResponse struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Position int    `json:"position"`
}

type LinkResponse struct {
	ID    string `json:"id"`
	Alias string `json:"alias"`
	Label string `json:"label,omitempty"`
}
