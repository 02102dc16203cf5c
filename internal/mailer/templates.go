package mailer

import (
	"fmt"
	"strings"
	"time"
)

// formatCents renders an integer cent amount as "12.50".
func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// DepositRequest holds everything the payment-request email needs.
type DepositRequest struct {
	ClientName       string
	StudioName       string
	AmountCents      int64
	TotalAmountCents int64
	RemainingCents   int64
	Currency         string
	PayURL           string
	ExpiresAt        time.Time
}

// DepositRequestEmail renders the initial payment-request email with the
// amount breakdown, the call-to-action link, and the expiry disclaimer.
func DepositRequestEmail(to string, req DepositRequest) Email {
	subject := fmt.Sprintf("%s: deposit request for your appointment", req.StudioName)
	expiry := req.ExpiresAt.Format("January 2, 2006")

	var html strings.Builder
	html.WriteString("<html><body>")
	html.WriteString(fmt.Sprintf("<p>Hi %s,</p>", req.ClientName))
	html.WriteString(fmt.Sprintf("<p>%s has requested a deposit to secure your appointment.</p>", req.StudioName))
	html.WriteString("<table>")
	html.WriteString(fmt.Sprintf("<tr><td>Deposit due now</td><td><strong>%s %s</strong></td></tr>", req.Currency, formatCents(req.AmountCents)))
	html.WriteString(fmt.Sprintf("<tr><td>Total procedure cost</td><td>%s %s</td></tr>", req.Currency, formatCents(req.TotalAmountCents)))
	html.WriteString(fmt.Sprintf("<tr><td>Balance due at appointment</td><td>%s %s</td></tr>", req.Currency, formatCents(req.RemainingCents)))
	html.WriteString("</table>")
	html.WriteString(fmt.Sprintf(`<p><a href="%s">Pay your deposit</a></p>`, req.PayURL))
	html.WriteString(fmt.Sprintf("<p><em>This payment link expires on %s.</em></p>", expiry))
	html.WriteString("</body></html>")

	var text strings.Builder
	text.WriteString(fmt.Sprintf("Hi %s,\n\n", req.ClientName))
	text.WriteString(fmt.Sprintf("%s has requested a deposit to secure your appointment.\n\n", req.StudioName))
	text.WriteString(fmt.Sprintf("Deposit due now: %s %s\n", req.Currency, formatCents(req.AmountCents)))
	text.WriteString(fmt.Sprintf("Total procedure cost: %s %s\n", req.Currency, formatCents(req.TotalAmountCents)))
	text.WriteString(fmt.Sprintf("Balance due at appointment: %s %s\n\n", req.Currency, formatCents(req.RemainingCents)))
	text.WriteString(fmt.Sprintf("Pay here: %s\n\n", req.PayURL))
	text.WriteString(fmt.Sprintf("This payment link expires on %s.\n", expiry))

	return Email{To: to, Subject: subject, HTML: html.String(), Text: text.String()}
}

// DepositConfirmation holds everything the post-payment email needs.
type DepositConfirmation struct {
	ClientName     string
	StudioName     string
	AmountCents    int64
	RemainingCents int64
	Currency       string
}

// DepositConfirmationEmail renders the post-payment confirmation with the
// amount paid and the remaining balance.
func DepositConfirmationEmail(to string, conf DepositConfirmation) Email {
	subject := fmt.Sprintf("%s: deposit received", conf.StudioName)

	var html strings.Builder
	html.WriteString("<html><body>")
	html.WriteString(fmt.Sprintf("<p>Hi %s,</p>", conf.ClientName))
	html.WriteString(fmt.Sprintf("<p>We received your deposit of <strong>%s %s</strong>. Your appointment is confirmed.</p>",
		conf.Currency, formatCents(conf.AmountCents)))
	html.WriteString(fmt.Sprintf("<p>Remaining balance due at your appointment: %s %s.</p>",
		conf.Currency, formatCents(conf.RemainingCents)))
	html.WriteString("</body></html>")

	var text strings.Builder
	text.WriteString(fmt.Sprintf("Hi %s,\n\n", conf.ClientName))
	text.WriteString(fmt.Sprintf("We received your deposit of %s %s. Your appointment is confirmed.\n\n",
		conf.Currency, formatCents(conf.AmountCents)))
	text.WriteString(fmt.Sprintf("Remaining balance due at your appointment: %s %s.\n",
		conf.Currency, formatCents(conf.RemainingCents)))

	return Email{To: to, Subject: subject, HTML: html.String(), Text: text.String()}
}
