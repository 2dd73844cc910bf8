package relay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"

	"github.com/portfolio/backend/internal/model"
)

// SMTPSender delivers notifications over an SMTP submission endpoint with
// PLAIN auth. The operator address is both sender and recipient.
type SMTPSender struct {
	Addr     string // host:port, e.g. smtp.gmail.com:587
	Username string
	Password string
}

var _ Sender = (*SMTPSender)(nil)

// Send formats a plain-text summary of msg and submits it.
func (s *SMTPSender) Send(_ context.Context, msg model.Message) error {
	auth := sasl.NewPlainClient("", s.Username, s.Password)
	mail := buildMail(s.Username, s.Username, msg)
	err := smtp.SendMail(s.Addr, auth, s.Username, []string{s.Username}, strings.NewReader(mail))
	return errors.Wrap(err, "smtp send")
}

// buildMail renders the notification as an RFC 5322 message.
func buildMail(from, to string, msg model.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: New Portfolio Message: %s\r\n", sanitizeHeader(msg.Subject))
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("New message from portfolio\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\r\n", msg.Name)
	fmt.Fprintf(&b, "Email: %s\r\n", msg.Email)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "\r\n%s\r\n\r\n", msg.Body)
	fmt.Fprintf(&b, "Received at: %s\r\n", msg.CreatedAt.Format(time.RFC1123))
	return b.String()
}

// sanitizeHeader strips CR/LF so user input cannot inject mail headers.
func sanitizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
