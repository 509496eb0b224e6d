package notification

import (
	"context"
	"errors"
	"log"
	"strings"
)

// ErrMailerDisabled is returned by a mailer that has nowhere to deliver to
var ErrMailerDisabled = errors.New("mail delivery disabled")

// Attachment is a file sent with a message
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is an outgoing email
type Message struct {
	From        string
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers messages
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// DevConsoleMailer logs messages instead of delivering them. When disabled it
// refuses every message, so callers see the notification as not sent.
type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) Send(_ context.Context, msg Message) error {
	if !m.enabled {
		return ErrMailerDisabled
	}
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Filename)
	}
	log.Printf("[DEV-EMAIL] from=%q to=%s subject=%q html_bytes=%d attachments=%s",
		msg.From, strings.Join(msg.To, ","), msg.Subject, len(msg.HTML), strings.Join(names, ","))
	return nil
}
