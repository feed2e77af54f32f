package db_models

import "github.com/google/uuid"

// Milestone is an ordered sub-goal. Step numbers sort ascending but are not
// required to be contiguous. Once achieved it is immutable.
type Milestone struct {
	BaseModel
	FundraiserID uuid.UUID `gorm:"index"`
	StepNumber   int
	Amount       float64 `gorm:"type:decimal(12,2)"`
	Title        string
	Purpose      string `gorm:"type:text"`
	Achieved     bool   `gorm:"default:false"`
	AchievedAt   *int64
}
