package db_models

import (
	"strings"
	"time"
)

type User struct {
	BaseModel
	Email         string     `gorm:"type:text;not null;uniqueIndex" json:"email"`
	EmailVerified *time.Time `json:"emailVerified,omitempty"`
	Image         *string    `gorm:"type:text" json:"image,omitempty"`
	FirstName     string     `gorm:"type:text;not null;index:idx_user_first_name" json:"firstName"`
	LastName      string     `gorm:"type:text;not null;index:idx_user_last_name" json:"lastName"`

	Account  *Account  `gorm:"foreignKey:UserID" json:"account,omitempty"`
	Sessions []Session `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "user" }

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
