package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is one staff-room chat message, persisted so history survives reconnects.
type Message struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SenderID  uint           `gorm:"not null;index" json:"sender_id"`
	Content   string         `gorm:"type:text" json:"content"`
	MediaURL  string         `gorm:"size:512" json:"media_url"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Sender User `gorm:"foreignKey:SenderID" json:"-"`
}

func (Message) TableName() string {
	return "messages"
}
