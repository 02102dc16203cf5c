package models

import (
	"time"

	"pmupro/internal/domain"

	"gorm.io/gorm"
)

// User is a studio staff member (artist or admin). Clients are not users;
// they are managed records owned by a user (see Client).
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Name            string         `gorm:"size:128;not null" json:"name"`
	Email           string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash    string         `gorm:"size:255" json:"-"`
	Role            string         `gorm:"size:20;not null;index" json:"role"` // ARTIST | ADMIN
	Phone           string         `gorm:"size:32" json:"phone"`
	AvatarURL       string         `gorm:"size:512" json:"avatar_url"`
	LicenseNumber   string         `gorm:"size:64" json:"license_number"`
	Active          bool           `gorm:"default:true;index" json:"active"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	CalendarAccount *CalendarAccount `gorm:"foreignKey:UserID" json:"calendar_account,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool { return u.Role == domain.RoleAdmin }
