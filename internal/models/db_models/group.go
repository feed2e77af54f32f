package db_models

import "github.com/google/uuid"

type GroupType string

const (
	GroupTypeIndividual GroupType = "individual"
	GroupTypeTeam       GroupType = "team"
	GroupTypeNonprofit  GroupType = "nonprofit"
)

// Group owns fundraisers and members. StripeAccountID non-nil means the
// group is connected and can receive funds.
type Group struct {
	BaseModel
	Name            string
	Slug            string    `gorm:"uniqueIndex;size:128"`
	Type            GroupType `gorm:"size:16"`
	OwnerID         uuid.UUID `gorm:"index"`
	StripeAccountID *string   `gorm:"index"`
	Verified        bool      `gorm:"default:false"`
	EIN             string    `gorm:"size:32"` // nonprofit only

	Owner       User          `gorm:"foreignKey:OwnerID"`
	Members     []GroupMember `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	Fundraisers []Fundraiser  `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}
