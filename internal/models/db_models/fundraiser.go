package db_models

import (
	"time"

	"github.com/google/uuid"
)

type FundraiserStatus string

const (
	FundraiserStatusDraft     FundraiserStatus = "draft"
	FundraiserStatusPublished FundraiserStatus = "published"
)

type FundraiserCategory string

const (
	CategoryMedical   FundraiserCategory = "medical"
	CategoryEducation FundraiserCategory = "education"
	CategoryEmergency FundraiserCategory = "emergency"
	CategoryCommunity FundraiserCategory = "community"
	CategoryAnimals   FundraiserCategory = "animals"
	CategoryOther     FundraiserCategory = "other"
)

func (c FundraiserCategory) Valid() bool {
	switch c {
	case CategoryMedical, CategoryEducation, CategoryEmergency,
		CategoryCommunity, CategoryAnimals, CategoryOther:
		return true
	}
	return false
}

// Fundraiser is a campaign owned by exactly one group. GoalAmount is in
// major currency units and must stay >= the sum of its milestone amounts.
type Fundraiser struct {
	BaseModel
	GroupID     uuid.UUID `gorm:"index"`
	Slug        string    `gorm:"uniqueIndex;size:128"`
	Title       string
	Summary     string             `gorm:"size:280"`
	Description string             `gorm:"type:text"`
	Category    FundraiserCategory `gorm:"size:24;index"`
	GoalAmount  float64            `gorm:"type:decimal(12,2)"`
	Currency    string             `gorm:"size:3;default:'usd'"`
	EndDate     *time.Time
	CoverID     *uuid.UUID
	Status      FundraiserStatus `gorm:"size:16;index;default:'draft'"`
	IsPublic    bool             `gorm:"default:false"`

	Cover      *Upload       `gorm:"foreignKey:CoverID"`
	Milestones []Milestone   `gorm:"foreignKey:FundraiserID;constraint:OnDelete:CASCADE"`
	Gallery    []GalleryItem `gorm:"foreignKey:FundraiserID;constraint:OnDelete:CASCADE"`
	Donations  []Donation    `gorm:"foreignKey:FundraiserID"`
}
