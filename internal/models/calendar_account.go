package models

import (
	"time"

	"gorm.io/gorm"
)

// CalendarAccount stores OAuth tokens for a user's connected calendar provider.
type CalendarAccount struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Provider     string         `gorm:"size:20;not null" json:"provider"` // GOOGLE
	Email        string         `gorm:"size:255" json:"email"`
	AccessToken  string         `gorm:"size:2048" json:"-"`
	RefreshToken string         `gorm:"size:2048" json:"-"`
	TokenExpiry  *time.Time     `json:"token_expiry"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (CalendarAccount) TableName() string {
	return "calendar_accounts"
}
