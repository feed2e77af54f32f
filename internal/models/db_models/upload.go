package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Upload references an asset already stored at the external asset service,
// keyed by the service's public id.
type Upload struct {
	BaseModel
	PublicID   string `gorm:"uniqueIndex;size:255"`
	URL        string
	Format     string `gorm:"size:16"`
	Bytes      int64
	UploadedBy uuid.UUID      `gorm:"index"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

// GalleryItem orders uploads within a fundraiser's gallery.
type GalleryItem struct {
	BaseModel
	FundraiserID uuid.UUID `gorm:"index"`
	UploadID     uuid.UUID
	Position     int

	Upload Upload `gorm:"foreignKey:UploadID"`
}
