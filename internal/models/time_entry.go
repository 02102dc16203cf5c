package models

import (
	"time"

	"gorm.io/gorm"
)

// TimeEntry records one clock-in/clock-out pair for a staff member.
// Coordinates are those reported at clock-in, validated against the studio geofence.
type TimeEntry struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	UserID      uint           `gorm:"not null;index" json:"user_id"`
	ClockInAt   time.Time      `gorm:"not null;index" json:"clock_in_at"`
	ClockOutAt  *time.Time     `json:"clock_out_at"`
	Latitude    float64        `json:"latitude"`
	Longitude   float64        `json:"longitude"`
	DistanceM   float64        `json:"distance_m"` // distance from studio at clock-in
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}
