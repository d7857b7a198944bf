package db_models

import "github.com/google/uuid"

const (
	ProviderCredential = "credential"
	ProviderGoogle     = "google"
)

// Account is one authentication method of a User, at most one per provider.
// It always carries exactly one Role.
type Account struct {
	BaseModel
	UserID            uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_user_account_provider" json:"userId"`
	Password          *string   `gorm:"type:text" json:"-"`
	RoleID            uint      `gorm:"not null;index" json:"roleId"`
	Role              *Role     `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	Type              *string   `gorm:"type:varchar(255)" json:"type,omitempty"`
	Provider          string    `gorm:"type:varchar(255);index;uniqueIndex:idx_user_account_provider" json:"provider"`
	ProviderAccountID *string   `gorm:"type:text" json:"providerAccountId,omitempty"`
	RefreshToken      *string   `gorm:"type:text" json:"-"`
	AccessToken       *string   `gorm:"type:text" json:"-"`
	ExpiresAt         *int64    `json:"expiresAt,omitempty"`
	TokenType         *string   `gorm:"type:text" json:"tokenType,omitempty"`
	Scope             *string   `gorm:"type:text" json:"scope,omitempty"`
	IDToken           *string   `gorm:"type:text" json:"-"`
	SessionState      *string   `gorm:"type:text" json:"-"`
}

func (Account) TableName() string { return "user_account" }

func (a *Account) RoleName() string {
	if a == nil || a.Role == nil {
		return ""
	}
	return a.Role.Name
}
