package notification

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"quotewizard/internal/domain/lead"
)

var ErrNoRecipients = errors.New("no notification recipients configured")

// LeadSource loads a stored lead
type LeadSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*lead.Lead, error)
}

// EmailNotifier emails the sales team about a new lead with a PDF summary
type EmailNotifier struct {
	leads      LeadSource
	renderer   *Renderer
	mailer     Mailer
	from       string
	recipients []string
}

func NewEmailNotifier(leads LeadSource, renderer *Renderer, mailer Mailer, from string, recipients []string) *EmailNotifier {
	return &EmailNotifier{
		leads:      leads,
		renderer:   renderer,
		mailer:     mailer,
		from:       from,
		recipients: recipients,
	}
}

// SendQuoteNotification loads the lead by id and mails its summary
func (n *EmailNotifier) SendQuoteNotification(ctx context.Context, leadID uuid.UUID) error {
	if len(n.recipients) == 0 {
		return ErrNoRecipients
	}

	l, err := n.leads.GetByID(ctx, leadID)
	if err != nil {
		return fmt.Errorf("load lead %s: %w", leadID, err)
	}

	body, err := n.renderer.HTML(l)
	if err != nil {
		return err
	}
	attachment, err := n.renderer.PDF(l)
	if err != nil {
		return err
	}

	msg := Message{
		From:    n.from,
		To:      n.recipients,
		Subject: n.renderer.Subject(l),
		HTML:    body,
		Attachments: []Attachment{{
			Filename:    PDFFilename,
			ContentType: "application/pdf",
			Content:     attachment,
		}},
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("send quote notification: %w", err)
	}

	log.Printf("quote_notification lead_id=%s recipients=%d", leadID, len(n.recipients))
	return nil
}
