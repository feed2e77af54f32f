package db_models

import "github.com/google/uuid"

// FundraiserLink is a shareable attribution alias; donations that arrive
// through it carry its id.
type FundraiserLink struct {
	BaseModel
	FundraiserID uuid.UUID `gorm:"index"`
	Alias        string    `gorm:"uniqueIndex;size:64"`
	Label        string    `gorm:"size:120"`
	CreatedByID  uuid.UUID
}
