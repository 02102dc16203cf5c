package mailer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestFormatCents(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{12345, "123.45"},
		{10000, "100.00"},
	}
	for _, c := range cases {
		if got := formatCents(c.cents); got != c.want {
			t.Errorf("formatCents(%d) = %q, want %q", c.cents, got, c.want)
		}
	}
}

func TestDepositRequestEmail(t *testing.T) {
	expires := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	e := DepositRequestEmail("jane@example.com", DepositRequest{
		ClientName:       "Jane Doe",
		StudioName:       "Ink & Iris Studio",
		AmountCents:      10000,
		TotalAmountCents: 50000,
		RemainingCents:   40000,
		Currency:         "USD",
		PayURL:           "https://pay.example.com/deposit/abc123",
		ExpiresAt:        expires,
	})

	if e.To != "jane@example.com" {
		t.Errorf("To = %q", e.To)
	}
	if !strings.Contains(e.Subject, "Ink & Iris Studio") {
		t.Errorf("subject missing studio name: %q", e.Subject)
	}
	for _, want := range []string{"Jane Doe", "USD 100.00", "USD 500.00", "USD 400.00", "https://pay.example.com/deposit/abc123", "March 15, 2026"} {
		if !strings.Contains(e.HTML, want) {
			t.Errorf("HTML body missing %q", want)
		}
		if !strings.Contains(e.Text, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestDepositConfirmationEmail(t *testing.T) {
	e := DepositConfirmationEmail("jane@example.com", DepositConfirmation{
		ClientName:     "Jane Doe",
		StudioName:     "Ink & Iris Studio",
		AmountCents:    10000,
		RemainingCents: 40000,
		Currency:       "USD",
	})
	if !strings.Contains(e.Subject, "deposit received") {
		t.Errorf("subject = %q", e.Subject)
	}
	for _, want := range []string{"USD 100.00", "USD 400.00"} {
		if !strings.Contains(e.HTML, want) {
			t.Errorf("HTML body missing %q", want)
		}
		if !strings.Contains(e.Text, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestConsoleTransportRejectsEmptyRecipient(t *testing.T) {
	tr := NewConsoleTransport(zap.NewNop())
	err := tr.Send(Email{Subject: "x"})
	if err == nil {
		t.Fatal("want error for empty recipient")
	}
	if err.Code != "no_recipient" {
		t.Errorf("code = %q, want no_recipient", err.Code)
	}
}

func TestConsoleTransportAcceptsEmail(t *testing.T) {
	tr := NewConsoleTransport(zap.NewNop())
	if err := tr.Send(Email{To: "a@b.c", Subject: "x", HTML: `<a href="https://example.com/pay">pay</a>`}); err != nil {
		t.Fatalf("send: %v", err)
	}
}

func TestHrefExtraction(t *testing.T) {
	html := `<p>hi</p><a href="https://example.com/deposit/tok">Pay</a><a href="https://other">x</a>`
	m := hrefRe.FindStringSubmatch(html)
	if len(m) != 2 || m[1] != "https://example.com/deposit/tok" {
		t.Errorf("extracted %v, want first href", m)
	}
}

func TestSendErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := transportErr(inner)
	if !errors.Is(err, inner) {
		t.Error("Unwrap does not reach the inner error")
	}
	if err.Code != "transport" {
		t.Errorf("code = %q, want transport", err.Code)
	}
	if !strings.Contains(err.Error(), "transport") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestMailerPropagatesTransportError(t *testing.T) {
	failing := transportFunc(func(e Email) *SendError {
		return transportErr(errors.New("down"))
	})
	m := New(failing, zap.NewNop())
	err := m.Send(Email{To: "a@b.c"})
	if err == nil || err.Code != "transport" {
		t.Errorf("err = %v, want transport SendError", err)
	}
}

type transportFunc func(Email) *SendError

func (f transportFunc) Send(e Email) *SendError { return f(e) }
