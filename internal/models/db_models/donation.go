package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
	DonationStatusRefunded  DonationStatus = "refunded"
)

// Donation is created pending at intent time; the processor webhook drives
// it to completed/failed/refunded. StripeIntentID stays nil if the intent
// call never succeeded (recoverable orphan, expired by reconciliation).
type Donation struct {
	BaseModel
	FundraiserID uuid.UUID      `gorm:"index"`
	DonorID      *uuid.UUID     `gorm:"index"` // nil for guest/anonymous donors
	LinkID       *uuid.UUID     `gorm:"index"` // attribution, optional
	Amount       float64        `gorm:"type:decimal(12,2)"`
	Currency     string         `gorm:"size:3"`
	Message      string         `gorm:"size:500"`
	DisplayName  string         `gorm:"size:120"`
	IsAnonymous  bool           `gorm:"default:false"`
	Status       DonationStatus `gorm:"size:16;index"`

	StripeIntentID *string        `gorm:"index"`
	Receipt        datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Donor *User           `gorm:"foreignKey:DonorID"`
	Link  *FundraiserLink `gorm:"foreignKey:LinkID"`
}
