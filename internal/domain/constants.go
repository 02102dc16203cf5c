package domain

import "errors"

const (
	RoleArtist = "ARTIST"
	RoleAdmin  = "ADMIN"
)

const (
	DepositPending   = "PENDING"
	DepositPaid      = "PAID"
	DepositExpired   = "EXPIRED"
	DepositRefunded  = "REFUNDED"
	DepositCancelled = "CANCELLED"
)

const (
	AppointmentScheduled = "SCHEDULED"
	AppointmentCompleted = "COMPLETED"
	AppointmentCancelled = "CANCELLED"
	AppointmentNoShow    = "NO_SHOW"
)

const (
	DocumentDraft  = "DRAFT"
	DocumentSent   = "SENT"
	DocumentSigned = "SIGNED"
)

var ErrInvalidTransition = errors.New("invalid deposit status transition")

// depositTransitions is the closed transition table for deposit statuses.
// Transitions are forward-only; PAID deposits may still be refunded.
var depositTransitions = map[string][]string{
	DepositPending: {DepositPaid, DepositExpired, DepositCancelled},
	DepositPaid:    {DepositRefunded},
}

// CanTransitionDeposit reports whether a deposit may move from one status to another.
func CanTransitionDeposit(from, to string) bool {
	for _, allowed := range depositTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidDepositStatus reports whether s is a member of the status enum.
func ValidDepositStatus(s string) bool {
	switch s {
	case DepositPending, DepositPaid, DepositExpired, DepositRefunded, DepositCancelled:
		return true
	}
	return false
}

// DefaultDepositPercent applies when a service does not set its own deposit percentage.
const DefaultDepositPercent = 30
