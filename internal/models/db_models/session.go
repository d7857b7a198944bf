package db_models

import (
	"time"

	"github.com/google/uuid"
)

// Session backs an issued token. One row per user is the policy, not a constraint.
type Session struct {
	BaseModel
	SessionToken string    `gorm:"type:text;not null;uniqueIndex" json:"sessionToken"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Expires      time.Time `gorm:"not null" json:"expires"`
}

func (Session) TableName() string { return "user_session" }
