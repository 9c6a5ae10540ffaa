package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
)

func TestNewSenderRequiresCredentials(t *testing.T) {
	if _, err := NewSender(Config{Host: "smtp.example.com"}); !errors.Is(err, ErrMissingCredentials) {
		t.Errorf("Expected ErrMissingCredentials, got %v", err)
	}
}

func TestNewSenderDefaults(t *testing.T) {
	s, err := NewSender(Config{User: "brief@brite.co", Password: "secret"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s.cfg.Host != "smtp.gmail.com" || s.cfg.Port != 587 {
		t.Errorf("Host/port defaults not applied: %+v", s.cfg)
	}
	if s.cfg.From != "brief@brite.co" {
		t.Errorf("From should default to User, got %q", s.cfg.From)
	}
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("brief@brite.co", "agent@example.com", "The BriteCo Brief", "<h1>Hi</h1>"))

	for _, want := range []string{
		"From: brief@brite.co\r\n",
		"To: agent@example.com\r\n",
		"Subject: The BriteCo Brief\r\n",
		"Content-Type: text/html",
		"<h1>Hi</h1>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("Message missing %q", want)
		}
	}
	if !strings.Contains(msg, "\r\n\r\n") {
		t.Errorf("Missing blank line between headers and body")
	}
}

func TestSendPerRecipientReport(t *testing.T) {
	s, err := NewSender(Config{User: "brief@brite.co", Password: "secret"})
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}

	s.send = func(_ string, _ smtp.Auth, _ string, to []string, _ []byte) error {
		if to[0] == "bad@example.com" {
			return errors.New("mailbox unavailable")
		}
		return nil
	}

	report, err := s.Send([]string{"good@example.com", "bad@example.com", "also.good@example.com"}, "Subject", "<p>body</p>")
	if err != nil {
		t.Fatalf("Partial failure should not error: %v", err)
	}
	if len(report.Sent) != 2 || len(report.Failed) != 1 {
		t.Fatalf("Unexpected report: %+v", report)
	}
	if report.Failed[0].Recipient != "bad@example.com" {
		t.Errorf("Wrong failed recipient: %+v", report.Failed[0])
	}
}

func TestSendAllFailed(t *testing.T) {
	s, err := NewSender(Config{User: "brief@brite.co", Password: "secret"})
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	s.send = func(_ string, _ smtp.Auth, _ string, _ []string, _ []byte) error {
		return errors.New("connection refused")
	}

	if _, err := s.Send([]string{"a@example.com"}, "Subject", "body"); err == nil {
		t.Errorf("Total failure should return an error")
	}
}

func TestSendNoRecipients(t *testing.T) {
	s, err := NewSender(Config{User: "brief@brite.co", Password: "secret"})
	if err != nil {
		t.Fatalf("NewSender: %v", err)
	}
	if _, err := s.Send(nil, "Subject", "body"); err == nil {
		t.Errorf("Empty recipient list should error")
	}
}
