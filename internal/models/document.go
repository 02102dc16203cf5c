package models

import (
	"time"

	"gorm.io/gorm"
)

// Document is a consent or intake form requiring the client's signature.
type Document struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	ClientID    uint           `gorm:"not null;index" json:"client_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Body        string         `gorm:"type:text" json:"body"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // DRAFT, SENT, SIGNED
	SignerName  string         `gorm:"size:128" json:"signer_name"`
	SignatureIP string         `gorm:"size:45" json:"signature_ip"`
	SignedAt    *time.Time     `json:"signed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Client Client `gorm:"foreignKey:ClientID" json:"-"`
}

func (Document) TableName() string {
	return "documents"
}
