package models

import (
	"time"

	"gorm.io/gorm"
)

// StudioService is a procedure in the studio catalog (microblading, lip blush, ...).
type StudioService struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:128;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	PriceCents     int64          `gorm:"not null" json:"price_cents"`
	DurationMin    int            `gorm:"not null;default:120" json:"duration_min"`
	DepositPercent int            `gorm:"not null;default:30" json:"deposit_percent"`
	Active         bool           `gorm:"default:true;index" json:"active"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (StudioService) TableName() string {
	return "studio_services"
}

// DepositCents returns the deposit due for this service at its list price.
func (s *StudioService) DepositCents() int64 {
	return s.PriceCents * int64(s.DepositPercent) / 100
}
