package db_models

type AccountType string

const (
	AccountTypeIndividual AccountType = "individual"
	AccountTypeTeam       AccountType = "team"
	AccountTypeNonprofit  AccountType = "nonprofit"
)

// User is the local record for a principal verified by the external identity
// provider; created on first successful token verification.
type User struct {
	BaseModel
	ExternalID    string `gorm:"uniqueIndex;size:64"`
	Email         string `gorm:"uniqueIndex"`
	DisplayName   string
	AccountType   AccountType `gorm:"size:16;default:'individual'"`
	SetupComplete bool        `gorm:"default:false"`
	IsAdmin       bool        `gorm:"default:false"`

	Memberships []GroupMember `gorm:"foreignKey:UserID"`
}
