// Package email sends newsletter previews over SMTP. Each recipient gets an
// individual send so one bad address cannot block the rest; the caller
// receives a per-recipient report.
package email

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/briteco/brief/internal/logger"
)

// ErrMissingCredentials is returned when SMTP user or password is not set.
var ErrMissingCredentials = errors.New("SMTP credentials not configured. Set SMTP_USER and SMTP_PASSWORD")

// Config holds the SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string // defaults to User when empty
}

// SendError records one failed recipient.
type SendError struct {
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
}

// Report summarizes one preview send.
type Report struct {
	Sent   []string    `json:"sent"`
	Failed []SendError `json:"failed,omitempty"`
}

// Sender delivers HTML mail through one SMTP account.
type Sender struct {
	cfg Config
	// send is swapped in tests.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSender creates a sender, validating the credentials up front.
func NewSender(cfg Config) (*Sender, error) {
	if cfg.User == "" || cfg.Password == "" {
		return nil, ErrMissingCredentials
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Sender{cfg: cfg, send: smtp.SendMail}, nil
}

// Send delivers the HTML body to every recipient individually and reports
// which sends succeeded. An error is returned only when no recipient could
// be reached.
func (s *Sender) Send(recipients []string, subject, htmlBody string) (*Report, error) {
	if len(recipients) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)

	report := &Report{}
	for _, recipient := range recipients {
		msg := buildMessage(s.cfg.From, recipient, subject, htmlBody)
		if err := s.send(addr, auth, s.cfg.From, []string{recipient}, msg); err != nil {
			logger.Error("Preview send failed", err, "recipient", recipient)
			report.Failed = append(report.Failed, SendError{Recipient: recipient, Reason: err.Error()})
			continue
		}
		logger.Info("Preview sent", "recipient", recipient)
		report.Sent = append(report.Sent, recipient)
	}

	if len(report.Sent) == 0 {
		return report, fmt.Errorf("failed to send to any of %d recipients", len(recipients))
	}
	return report, nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	b.WriteString("\r\n")
	return []byte(b.String())
}
