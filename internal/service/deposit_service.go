package service

import (
	"errors"
	"time"

	"pmupro/internal/domain"
	"pmupro/internal/mailer"
	"pmupro/internal/models"
	"pmupro/internal/repository"
	"pmupro/pkg/token"

	"go.uber.org/zap"
)

var (
	ErrDepositExceedsTotal = errors.New("deposit amount exceeds total amount")
	ErrInvalidAmount       = errors.New("deposit amount must be positive")
	ErrUnknownStatus       = errors.New("unknown deposit status")
)

// DepositService owns the deposit payment lifecycle: creation with an emailed
// payment link, guarded status transitions, listings, stats, and the expiry sweep.
type DepositService struct {
	deposits   *repository.DepositRepository
	clients    *repository.ClientRepository
	users      *repository.UserRepository
	mail       *mailer.Mailer
	log        *zap.Logger
	baseURL    string
	studioName string
	linkDays   int
}

func NewDepositService(
	deposits *repository.DepositRepository,
	clients *repository.ClientRepository,
	users *repository.UserRepository,
	mail *mailer.Mailer,
	log *zap.Logger,
	baseURL, studioName string,
	linkExpirationDays int,
) *DepositService {
	if linkExpirationDays <= 0 {
		linkExpirationDays = 7
	}
	return &DepositService{
		deposits:   deposits,
		clients:    clients,
		users:      users,
		mail:       mail,
		log:        log,
		baseURL:    baseURL,
		studioName: studioName,
		linkDays:   linkExpirationDays,
	}
}

type CreateDepositInput struct {
	ClientID           uint
	UserID             uint
	AmountCents        int64
	TotalAmountCents   int64
	AppointmentID      *uint
	Currency           string
	Notes              string
	LinkExpirationDays int
}

// Create persists a PENDING deposit with a fresh payment link and emails the
// request to the client. A failed email is logged, not fatal; the deposit row
// stands and the link can be re-sent.
func (s *DepositService) Create(in CreateDepositInput) (*models.DepositPayment, error) {
	if in.AmountCents <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.AmountCents > in.TotalAmountCents {
		return nil, ErrDepositExceedsTotal
	}
	client, err := s.clients.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	link, err := token.New()
	if err != nil {
		return nil, err
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	days := in.LinkExpirationDays
	if days <= 0 {
		days = s.linkDays
	}
	d := &models.DepositPayment{
		ClientID:             in.ClientID,
		UserID:               in.UserID,
		AppointmentID:        in.AppointmentID,
		AmountCents:          in.AmountCents,
		TotalAmountCents:     in.TotalAmountCents,
		RemainingCents:       in.TotalAmountCents - in.AmountCents,
		Currency:             currency,
		Status:               domain.DepositPending,
		DepositLink:          link,
		DepositLinkExpiresAt: time.Now().Add(time.Duration(days) * 24 * time.Hour),
		Notes:                in.Notes,
	}
	if err := s.deposits.Create(d); err != nil {
		return nil, err
	}
	s.sendRequestEmail(d, client)
	return d, nil
}

// ResendLink re-sends the payment-request email for an existing deposit.
func (s *DepositService) ResendLink(d *models.DepositPayment) *mailer.SendError {
	client, err := s.clients.GetByID(d.ClientID)
	if err != nil {
		return &mailer.SendError{Code: "no_recipient", Err: err}
	}
	return s.sendRequestEmailErr(d, client)
}

func (s *DepositService) sendRequestEmail(d *models.DepositPayment, client *models.Client) {
	if err := s.sendRequestEmailErr(d, client); err != nil {
		s.log.Warn("deposit request email not delivered",
			zap.Uint("deposit_id", d.ID),
			zap.String("code", err.Code),
		)
	}
}

func (s *DepositService) sendRequestEmailErr(d *models.DepositPayment, client *models.Client) *mailer.SendError {
	email := mailer.DepositRequestEmail(client.Email, mailer.DepositRequest{
		ClientName:       client.FullName(),
		StudioName:       s.studioName,
		AmountCents:      d.AmountCents,
		TotalAmountCents: d.TotalAmountCents,
		RemainingCents:   d.RemainingCents,
		Currency:         d.Currency,
		PayURL:           s.PayURL(d.DepositLink),
		ExpiresAt:        d.DepositLinkExpiresAt,
	})
	return s.mail.Send(email)
}

// PayURL returns the public payment page URL for a link token.
func (s *DepositService) PayURL(link string) string {
	return s.baseURL + "/deposit/" + link
}

// GetByLink resolves a deposit by its payment link. Expired records resolve
// as-is; the caller checks DepositLinkExpiresAt if it cares.
func (s *DepositService) GetByLink(link string) (*models.DepositPayment, error) {
	return s.deposits.GetByLink(link)
}

func (s *DepositService) GetByID(id uint) (*models.DepositPayment, error) {
	return s.deposits.GetByID(id)
}

// StatusUpdate carries the transition-specific fields.
type StatusUpdate struct {
	PaidAt            *time.Time
	RefundAmountCents *int64
	RefundReason      string
}

// UpdateStatus applies a guarded status transition. Illegal transitions
// (anything outside PENDING→{PAID,EXPIRED,CANCELLED}, PAID→REFUNDED) fail
// with domain.ErrInvalidTransition.
func (s *DepositService) UpdateStatus(id uint, status string, extra StatusUpdate) (*models.DepositPayment, error) {
	if !domain.ValidDepositStatus(status) {
		return nil, ErrUnknownStatus
	}
	d, err := s.deposits.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionDeposit(d.Status, status) {
		return nil, domain.ErrInvalidTransition
	}
	d.Status = status
	switch status {
	case domain.DepositPaid:
		paidAt := time.Now()
		if extra.PaidAt != nil {
			paidAt = *extra.PaidAt
		}
		d.PaidAt = &paidAt
	case domain.DepositRefunded:
		now := time.Now()
		d.RefundedAt = &now
		if extra.RefundAmountCents != nil {
			d.RefundAmountCents = extra.RefundAmountCents
		} else {
			amount := d.AmountCents
			d.RefundAmountCents = &amount
		}
		d.RefundReason = extra.RefundReason
	}
	if err := s.deposits.Update(d); err != nil {
		return nil, err
	}
	if status == domain.DepositPaid {
		s.sendConfirmationEmail(d)
	}
	return d, nil
}

func (s *DepositService) sendConfirmationEmail(d *models.DepositPayment) {
	client, err := s.clients.GetByID(d.ClientID)
	if err != nil {
		s.log.Warn("deposit confirmation email skipped, client lookup failed",
			zap.Uint("deposit_id", d.ID), zap.Error(err))
		return
	}
	email := mailer.DepositConfirmationEmail(client.Email, mailer.DepositConfirmation{
		ClientName:     client.FullName(),
		StudioName:     s.studioName,
		AmountCents:    d.AmountCents,
		RemainingCents: d.RemainingCents,
		Currency:       d.Currency,
	})
	if err := s.mail.Send(email); err != nil {
		s.log.Warn("deposit confirmation email not delivered",
			zap.Uint("deposit_id", d.ID),
			zap.String("code", err.Code),
		)
	}
}

func (s *DepositService) ListForUser(userID uint) ([]models.DepositPayment, error) {
	return s.deposits.ListByUserID(userID)
}

func (s *DepositService) ListForClient(clientID uint) ([]models.DepositPayment, error) {
	return s.deposits.ListByClientID(clientID)
}

// SweepExpired bulk-transitions stale PENDING deposits to EXPIRED. Idempotent;
// safe to invoke repeatedly or concurrently with user-facing writes.
func (s *DepositService) SweepExpired() (int64, error) {
	return s.deposits.ExpirePending(time.Now())
}

// DepositStats aggregates a user's deposits per status.
type DepositStats struct {
	TotalDeposits        int   `json:"total_deposits"`
	PendingDeposits      int   `json:"pending_deposits"`
	PaidDeposits         int   `json:"paid_deposits"`
	ExpiredDeposits      int   `json:"expired_deposits"`
	RefundedDeposits     int   `json:"refunded_deposits"`
	CancelledDeposits    int   `json:"cancelled_deposits"`
	PendingAmountCents   int64 `json:"pending_amount_cents"`
	CollectedAmountCents int64 `json:"collected_amount_cents"`
	RefundedAmountCents  int64 `json:"refunded_amount_cents"`
}

// Stats loads the user's deposits and reduces them in memory. O(n) in deposit
// count, which is fine at studio scale.
func (s *DepositService) Stats(userID uint) (*DepositStats, error) {
	list, err := s.deposits.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	stats := &DepositStats{TotalDeposits: len(list)}
	for _, d := range list {
		switch d.Status {
		case domain.DepositPending:
			stats.PendingDeposits++
			stats.PendingAmountCents += d.AmountCents
		case domain.DepositPaid:
			stats.PaidDeposits++
			stats.CollectedAmountCents += d.AmountCents
		case domain.DepositExpired:
			stats.ExpiredDeposits++
		case domain.DepositRefunded:
			stats.RefundedDeposits++
			if d.RefundAmountCents != nil {
				stats.RefundedAmountCents += *d.RefundAmountCents
			}
		case domain.DepositCancelled:
			stats.CancelledDeposits++
		}
	}
	return stats, nil
}
