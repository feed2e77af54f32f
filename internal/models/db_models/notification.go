package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationType string

const (
	NotificationMemberInvited     NotificationType = "member_invited"
	NotificationInviteAccepted    NotificationType = "invite_accepted"
	NotificationDonationCompleted NotificationType = "donation_completed"
	NotificationMilestoneAchieved NotificationType = "milestone_achieved"
)

// Notification is a fire-and-forget record directed at a user.
type Notification struct {
	BaseModel
	UserID  uuid.UUID        `gorm:"index"`
	Type    NotificationType `gorm:"size:32"`
	Message string           `gorm:"size:500"`
	Read    bool             `gorm:"default:false"`
	Payload datatypes.JSON   `gorm:"type:jsonb;default:'{}'"`
}
