package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Reference  string         `gorm:"size:36;uniqueIndex;not null" json:"reference"` // uuid booking reference
	UserID     uint           `gorm:"not null;index" json:"user_id"`                 // artist
	ClientID   uint           `gorm:"not null;index" json:"client_id"`
	ServiceID  uint           `gorm:"not null;index" json:"service_id"`
	StartsAt   time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt     time.Time      `gorm:"not null" json:"ends_at"`
	Status     string         `gorm:"size:20;not null;index" json:"status"` // SCHEDULED, COMPLETED, CANCELLED, NO_SHOW
	PriceCents int64          `gorm:"not null" json:"price_cents"`
	Notes      string         `gorm:"type:text" json:"notes"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	User    User          `gorm:"foreignKey:UserID" json:"-"`
	Client  Client        `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Service StudioService `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
