package models

import (
	"time"

	"gorm.io/gorm"
)

// DepositPayment is one deposit obligation tied to a client and optionally an
// appointment. Rows are never physically deleted; status moves through the
// transition table in internal/domain.
type DepositPayment struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	ClientID             uint           `gorm:"not null;index" json:"client_id"`
	UserID               uint           `gorm:"not null;index" json:"user_id"` // owning artist
	AppointmentID        *uint          `gorm:"index" json:"appointment_id"`
	AmountCents          int64          `gorm:"not null" json:"amount_cents"`       // deposit due
	TotalAmountCents     int64          `gorm:"not null" json:"total_amount_cents"` // full procedure cost
	RemainingCents       int64          `gorm:"not null" json:"remaining_cents"`    // total - deposit, due at service
	Currency             string         `gorm:"size:3;default:'USD'" json:"currency"`
	Status               string         `gorm:"size:20;not null;index" json:"status"` // PENDING, PAID, EXPIRED, REFUNDED, CANCELLED
	DepositLink          string         `gorm:"size:128;uniqueIndex;not null" json:"deposit_link"`
	DepositLinkExpiresAt time.Time      `gorm:"not null" json:"deposit_link_expires_at"`
	Notes                string         `gorm:"type:text" json:"notes"`
	PaidAt               *time.Time     `json:"paid_at"`
	RefundAmountCents    *int64         `json:"refund_amount_cents"`
	RefundedAt           *time.Time     `json:"refunded_at"`
	RefundReason         string         `gorm:"size:255" json:"refund_reason"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	Client      Client       `gorm:"foreignKey:ClientID" json:"-"`
	User        User         `gorm:"foreignKey:UserID" json:"-"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}

func (DepositPayment) TableName() string {
	return "deposit_payments"
}

// Expired reports whether the payment link deadline has passed at t. The
// lookup path does not enforce this; callers decide what to do with it.
func (d *DepositPayment) Expired(t time.Time) bool {
	return d.DepositLinkExpiresAt.Before(t)
}
