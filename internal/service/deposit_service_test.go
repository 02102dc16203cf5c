package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"pmupro/internal/domain"
	"pmupro/internal/mailer"
	"pmupro/internal/models"
	"pmupro/internal/repository"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingTransport captures sent emails instead of delivering them.
type recordingTransport struct {
	sent []mailer.Email
	fail *mailer.SendError
}

func (t *recordingTransport) Send(e mailer.Email) *mailer.SendError {
	if t.fail != nil {
		return t.fail
	}
	t.sent = append(t.sent, e)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Client{}, &models.DepositPayment{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type depositFixture struct {
	svc      *DepositService
	db       *gorm.DB
	mail     *recordingTransport
	userID   uint
	clientID uint
}

func newDepositFixture(t *testing.T) *depositFixture {
	t.Helper()
	db := newTestDB(t)
	transport := &recordingTransport{}
	svc := NewDepositService(
		repository.NewDepositRepository(db),
		repository.NewClientRepository(db),
		repository.NewUserRepository(db),
		mailer.New(transport, zap.NewNop()),
		zap.NewNop(),
		"https://pay.example.com",
		"Ink & Iris Studio",
		7,
	)
	user := &models.User{Name: "Ava Artist", Email: "ava@example.com", PasswordHash: "x", Role: domain.RoleArtist, Active: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	client := &models.Client{UserID: user.ID, FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return &depositFixture{svc: svc, db: db, mail: transport, userID: user.ID, clientID: client.ID}
}

func (f *depositFixture) create(t *testing.T, amount, total int64) *models.DepositPayment {
	t.Helper()
	d, err := f.svc.Create(CreateDepositInput{
		ClientID:         f.clientID,
		UserID:           f.userID,
		AmountCents:      amount,
		TotalAmountCents: total,
	})
	if err != nil {
		t.Fatalf("create deposit: %v", err)
	}
	return d
}

func TestCreateDeposit(t *testing.T) {
	f := newDepositFixture(t)
	d := f.create(t, 10000, 50000)

	if d.Status != domain.DepositPending {
		t.Errorf("status = %q, want PENDING", d.Status)
	}
	if d.RemainingCents != 40000 {
		t.Errorf("remaining = %d, want 40000", d.RemainingCents)
	}
	if len(d.DepositLink) != 64 {
		t.Errorf("link length = %d, want 64", len(d.DepositLink))
	}
	if d.Currency != "USD" {
		t.Errorf("currency = %q, want USD", d.Currency)
	}
	wantExpiry := time.Now().Add(7 * 24 * time.Hour)
	if diff := d.DepositLinkExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Errorf("expiry = %v, want ~%v", d.DepositLinkExpiresAt, wantExpiry)
	}

	if len(f.mail.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(f.mail.sent))
	}
	sent := f.mail.sent[0]
	if sent.To != "jane@example.com" {
		t.Errorf("email to = %q", sent.To)
	}
	if !strings.Contains(sent.HTML, f.svc.PayURL(d.DepositLink)) {
		t.Errorf("email HTML missing payment link")
	}
	if !strings.Contains(sent.Text, "400.00") {
		t.Errorf("email text missing remaining balance, got:\n%s", sent.Text)
	}
}

func TestCreateDepositValidation(t *testing.T) {
	f := newDepositFixture(t)

	if _, err := f.svc.Create(CreateDepositInput{ClientID: f.clientID, UserID: f.userID, AmountCents: 0, TotalAmountCents: 100}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: err = %v, want ErrInvalidAmount", err)
	}
	if _, err := f.svc.Create(CreateDepositInput{ClientID: f.clientID, UserID: f.userID, AmountCents: 600, TotalAmountCents: 500}); !errors.Is(err, ErrDepositExceedsTotal) {
		t.Errorf("amount > total: err = %v, want ErrDepositExceedsTotal", err)
	}
	if _, err := f.svc.Create(CreateDepositInput{ClientID: 999, UserID: f.userID, AmountCents: 100, TotalAmountCents: 500}); err == nil {
		t.Error("unknown client: want error")
	}
}

func TestCreateDepositEmailFailureIsNotFatal(t *testing.T) {
	f := newDepositFixture(t)
	f.mail.fail = &mailer.SendError{Code: "transport", Err: errors.New("smtp down")}

	d := f.create(t, 5000, 20000)
	got, err := f.svc.GetByID(d.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != domain.DepositPending {
		t.Errorf("status = %q, want PENDING despite email failure", got.Status)
	}
}

func TestGetByLink(t *testing.T) {
	f := newDepositFixture(t)
	d := f.create(t, 10000, 50000)

	got, err := f.svc.GetByLink(d.DepositLink)
	if err != nil {
		t.Fatalf("get by link: %v", err)
	}
	if got.ID != d.ID {
		t.Errorf("got deposit %d, want %d", got.ID, d.ID)
	}

	// An expired link still resolves; the caller inspects the deadline.
	past := time.Now().Add(-48 * time.Hour)
	if err := f.db.Model(&models.DepositPayment{}).Where("id = ?", d.ID).
		Update("deposit_link_expires_at", past).Error; err != nil {
		t.Fatalf("backdate expiry: %v", err)
	}
	got, err = f.svc.GetByLink(d.DepositLink)
	if err != nil {
		t.Fatalf("get expired by link: %v", err)
	}
	if !got.DepositLinkExpiresAt.Before(time.Now()) {
		t.Error("expected a past expiry after backdating")
	}

	if _, err := f.svc.GetByLink("nope"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("unknown link: err = %v, want record not found", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newDepositFixture(t)

	t.Run("pending to paid", func(t *testing.T) {
		d := f.create(t, 10000, 50000)
		f.mail.sent = nil

		got, err := f.svc.UpdateStatus(d.ID, domain.DepositPaid, StatusUpdate{})
		if err != nil {
			t.Fatalf("mark paid: %v", err)
		}
		if got.Status != domain.DepositPaid {
			t.Errorf("status = %q, want PAID", got.Status)
		}
		if got.PaidAt == nil {
			t.Error("PaidAt not set")
		}
		reloaded, err := f.svc.GetByLink(d.DepositLink)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if reloaded.Status != domain.DepositPaid {
			t.Errorf("reloaded status = %q, want PAID", reloaded.Status)
		}
		if len(f.mail.sent) != 1 || !strings.Contains(f.mail.sent[0].Subject, "deposit received") {
			t.Errorf("expected one confirmation email, got %v", f.mail.sent)
		}
	})

	t.Run("paid to refunded defaults to full amount", func(t *testing.T) {
		d := f.create(t, 10000, 50000)
		if _, err := f.svc.UpdateStatus(d.ID, domain.DepositPaid, StatusUpdate{}); err != nil {
			t.Fatalf("mark paid: %v", err)
		}
		got, err := f.svc.UpdateStatus(d.ID, domain.DepositRefunded, StatusUpdate{RefundReason: "client cancelled"})
		if err != nil {
			t.Fatalf("refund: %v", err)
		}
		if got.RefundAmountCents == nil || *got.RefundAmountCents != 10000 {
			t.Errorf("refund amount = %v, want 10000", got.RefundAmountCents)
		}
		if got.RefundedAt == nil {
			t.Error("RefundedAt not set")
		}
	})

	t.Run("expired cannot become paid", func(t *testing.T) {
		d := f.create(t, 10000, 50000)
		if _, err := f.svc.UpdateStatus(d.ID, domain.DepositExpired, StatusUpdate{}); err != nil {
			t.Fatalf("mark expired: %v", err)
		}
		if _, err := f.svc.UpdateStatus(d.ID, domain.DepositPaid, StatusUpdate{}); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("pending cannot be refunded", func(t *testing.T) {
		d := f.create(t, 10000, 50000)
		if _, err := f.svc.UpdateStatus(d.ID, domain.DepositRefunded, StatusUpdate{}); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Errorf("err = %v, want ErrInvalidTransition", err)
		}
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		d := f.create(t, 10000, 50000)
		if _, err := f.svc.UpdateStatus(d.ID, "SHIPPED", StatusUpdate{}); !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("err = %v, want ErrUnknownStatus", err)
		}
	})
}

func TestSweepExpired(t *testing.T) {
	f := newDepositFixture(t)

	stale := f.create(t, 10000, 50000)
	fresh := f.create(t, 20000, 80000)
	paid := f.create(t, 30000, 90000)
	if _, err := f.svc.UpdateStatus(paid.ID, domain.DepositPaid, StatusUpdate{}); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	past := time.Now().Add(-time.Hour)
	for _, id := range []uint{stale.ID, paid.ID} {
		if err := f.db.Model(&models.DepositPayment{}).Where("id = ?", id).
			Update("deposit_link_expires_at", past).Error; err != nil {
			t.Fatalf("backdate: %v", err)
		}
	}

	n, err := f.svc.SweepExpired()
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Errorf("swept %d rows, want 1", n)
	}

	wantStatus := map[uint]string{
		stale.ID: domain.DepositExpired,
		fresh.ID: domain.DepositPending,
		paid.ID:  domain.DepositPaid,
	}
	for id, want := range wantStatus {
		got, err := f.svc.GetByID(id)
		if err != nil {
			t.Fatalf("reload %d: %v", id, err)
		}
		if got.Status != want {
			t.Errorf("deposit %d status = %q, want %q", id, got.Status, want)
		}
	}

	// A second sweep finds nothing left to expire.
	n, err = f.svc.SweepExpired()
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if n != 0 {
		t.Errorf("second sweep touched %d rows, want 0", n)
	}
}

func TestStats(t *testing.T) {
	f := newDepositFixture(t)

	f.create(t, 10000, 50000)
	f.create(t, 20000, 60000)
	paid := f.create(t, 30000, 90000)
	if _, err := f.svc.UpdateStatus(paid.ID, domain.DepositPaid, StatusUpdate{}); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	refunded := f.create(t, 5000, 40000)
	if _, err := f.svc.UpdateStatus(refunded.ID, domain.DepositPaid, StatusUpdate{}); err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if _, err := f.svc.UpdateStatus(refunded.ID, domain.DepositRefunded, StatusUpdate{}); err != nil {
		t.Fatalf("refund: %v", err)
	}
	cancelled := f.create(t, 7000, 30000)
	if _, err := f.svc.UpdateStatus(cancelled.ID, domain.DepositCancelled, StatusUpdate{}); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	stats, err := f.svc.Stats(f.userID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalDeposits != 5 {
		t.Errorf("total = %d, want 5", stats.TotalDeposits)
	}
	if stats.PendingDeposits != 2 || stats.PendingAmountCents != 30000 {
		t.Errorf("pending = %d/%d cents, want 2/30000", stats.PendingDeposits, stats.PendingAmountCents)
	}
	if stats.PaidDeposits != 1 || stats.CollectedAmountCents != 30000 {
		t.Errorf("paid = %d/%d cents, want 1/30000", stats.PaidDeposits, stats.CollectedAmountCents)
	}
	if stats.RefundedDeposits != 1 || stats.RefundedAmountCents != 5000 {
		t.Errorf("refunded = %d/%d cents, want 1/5000", stats.RefundedDeposits, stats.RefundedAmountCents)
	}
	if stats.CancelledDeposits != 1 {
		t.Errorf("cancelled = %d, want 1", stats.CancelledDeposits)
	}
	sum := stats.PendingDeposits + stats.PaidDeposits + stats.ExpiredDeposits + stats.RefundedDeposits + stats.CancelledDeposits
	if sum != stats.TotalDeposits {
		t.Errorf("per-status counts sum to %d, total is %d", sum, stats.TotalDeposits)
	}
}
