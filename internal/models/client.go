package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a studio client record created during intake. Owned by the staff
// user who registered them.
type Client struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"not null;index" json:"user_id"` // owning artist
	FirstName      string         `gorm:"size:64;not null" json:"first_name"`
	LastName       string         `gorm:"size:64" json:"last_name"`
	Email          string         `gorm:"size:255;index" json:"email"`
	Phone          string         `gorm:"size:32" json:"phone"`
	DateOfBirth    *time.Time     `json:"date_of_birth"`
	SkinType       string         `gorm:"size:32" json:"skin_type"` // Fitzpatrick I-VI
	Allergies      string         `gorm:"type:text" json:"allergies"`
	Medications    string         `gorm:"type:text" json:"medications"`
	Notes          string         `gorm:"type:text" json:"notes"`
	PhotoURL       string         `gorm:"size:512" json:"photo_url"`
	AnalysisResult string         `gorm:"type:text" json:"analysis_result"` // last AI pigment recommendation
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Client) TableName() string {
	return "clients"
}

func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
