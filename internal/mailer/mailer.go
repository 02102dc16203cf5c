package mailer

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"regexp"

	"go.uber.org/zap"
)

// SendError is the typed failure returned by transports so callers can tell
// a missing address apart from a transport outage.
type SendError struct {
	Code string // "no_recipient" | "transport"
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("mailer: %s: %v", e.Code, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

var ErrNoRecipient = &SendError{Code: "no_recipient", Err: fmt.Errorf("empty recipient address")}

func transportErr(err error) *SendError {
	return &SendError{Code: "transport", Err: err}
}

// Email is one outbound message with parallel HTML and plain-text bodies.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Transport delivers rendered emails.
type Transport interface {
	Send(e Email) *SendError
}

// SMTPTransport sends over implicit TLS (port 465 style).
type SMTPTransport struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

func NewSMTPTransport(host, port, username, password, from, fromName string) *SMTPTransport {
	return &SMTPTransport{Host: host, Port: port, Username: username, Password: password, From: from, FromName: fromName}
}

func (t *SMTPTransport) Send(e Email) *SendError {
	if e.To == "" {
		return ErrNoRecipient
	}
	boundary := "np-pmupro-alt"
	msg := []byte(
		fmt.Sprintf("From: %s <%s>\r\n", t.FromName, t.From) +
			fmt.Sprintf("To: %s\r\n", e.To) +
			fmt.Sprintf("Subject: %s\r\n", e.Subject) +
			"MIME-Version: 1.0\r\n" +
			fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary) +
			"\r\n" +
			"--" + boundary + "\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n" +
			e.Text + "\r\n" +
			"--" + boundary + "\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n\r\n" +
			e.HTML + "\r\n" +
			"--" + boundary + "--\r\n",
	)

	serverAddr := t.Host + ":" + t.Port
	tlsConfig := &tls.Config{ServerName: t.Host}
	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return transportErr(err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, t.Host)
	if err != nil {
		return transportErr(err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", t.Username, t.Password, t.Host)
	if err := client.Auth(auth); err != nil {
		return transportErr(err)
	}
	if err := client.Mail(t.From); err != nil {
		return transportErr(err)
	}
	if err := client.Rcpt(e.To); err != nil {
		return transportErr(err)
	}
	w, err := client.Data()
	if err != nil {
		return transportErr(err)
	}
	if _, err := w.Write(msg); err != nil {
		return transportErr(err)
	}
	if err := w.Close(); err != nil {
		return transportErr(err)
	}
	return nil
}

var hrefRe = regexp.MustCompile(`href="([^"]+)"`)

// ConsoleTransport logs emails instead of sending them (development). The
// first href in the HTML body is pulled out so the payment link is easy to
// copy from logs.
type ConsoleTransport struct {
	log *zap.Logger
}

func NewConsoleTransport(log *zap.Logger) *ConsoleTransport {
	return &ConsoleTransport{log: log}
}

func (t *ConsoleTransport) Send(e Email) *SendError {
	if e.To == "" {
		return ErrNoRecipient
	}
	link := ""
	if m := hrefRe.FindStringSubmatch(e.HTML); len(m) == 2 {
		link = m[1]
	}
	t.log.Info("email (console transport)",
		zap.String("to", e.To),
		zap.String("subject", e.Subject),
		zap.String("link", link),
	)
	return nil
}

// Mailer renders templates and hands them to the transport.
type Mailer struct {
	transport Transport
	log       *zap.Logger
}

func New(transport Transport, log *zap.Logger) *Mailer {
	return &Mailer{transport: transport, log: log}
}

func (m *Mailer) Send(e Email) *SendError {
	if err := m.transport.Send(e); err != nil {
		m.log.Warn("email send failed",
			zap.String("to", e.To),
			zap.String("subject", e.Subject),
			zap.String("code", err.Code),
			zap.Error(err.Err),
		)
		return err
	}
	return nil
}
