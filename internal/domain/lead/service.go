package lead

import (
	"context"
	"log"

	"github.com/google/uuid"

	"quotewizard/internal/domain/quote"
)

// Notifier announces a new lead. Failures never fail the submission.
type Notifier interface {
	SendQuoteNotification(ctx context.Context, leadID uuid.UUID) error
}

// Event types pushed to live admin feeds
const (
	EventLeadCreated       = "lead_created"
	EventLeadStatusChanged = "lead_status_changed"
)

// Event is a lead change pushed to live subscribers
type Event struct {
	Type   string    `json:"type"`
	LeadID uuid.UUID `json:"lead_id"`
	Status Status    `json:"status"`
	Lead   *Lead     `json:"lead,omitempty"`
}

// EventPublisher fans lead events out to subscribers
type EventPublisher interface {
	Publish(event Event)
}

// Submission is the result of a successful submit
type Submission struct {
	Lead    *Lead   `json:"lead"`
	Summary Summary `json:"summary"`

	// NotificationErr is set when the lead was stored but the notifier failed
	NotificationErr error `json:"-"`
}

// NotificationSent reports whether the notifier succeeded
func (s *Submission) NotificationSent() bool {
	return s.NotificationErr == nil
}

// Service handles lead business logic
type Service struct {
	store    Store
	notifier Notifier
	events   EventPublisher
	steps    *quote.Registry
}

// NewService creates lead service. notifier and events may be nil.
func NewService(store Store, notifier Notifier, events EventPublisher) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		events:   events,
		steps:    quote.DefaultRegistry(),
	}
}

// Submit validates and persists a finished quote request, then notifies.
// Persistence runs first and is the only fatal step.
func (s *Service) Submit(ctx context.Context, req quote.QuoteRequest) (*Submission, error) {
	payload, err := BuildPayload(s.steps, req)
	if err != nil {
		return nil, err
	}

	lead, err := s.store.Insert(ctx, payload)
	if err != nil {
		log.Printf("quote_submit stage=insert objective=%s budget=%d options=%d error=%q",
			payload.MainObjective, payload.Budget, len(payload.CampaignOptions), err.Error())
		return nil, &PersistenceError{Err: err}
	}

	sub := &Submission{Lead: lead, Summary: Summarize(lead)}

	if s.notifier != nil {
		if err := s.notifier.SendQuoteNotification(ctx, lead.ID); err != nil {
			sub.NotificationErr = &NotificationError{LeadID: lead.ID, Err: err}
			log.Printf("quote_submit stage=notify lead_id=%s error=%q", lead.ID, err.Error())
		}
	}

	s.publish(Event{Type: EventLeadCreated, LeadID: lead.ID, Status: lead.Status, Lead: lead})
	log.Printf("quote_submit stage=done lead_id=%s budget=%d options=%d", lead.ID, lead.Budget, len(lead.CampaignOptions))

	return sub, nil
}

// GetByID returns lead by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	return s.store.GetByID(ctx, id)
}

// ListAll returns every lead, newest first
func (s *Service) ListAll(ctx context.Context) ([]Lead, error) {
	return s.store.ListAll(ctx)
}

// ListLeads returns leads with optional status filter
func (s *Service) ListLeads(ctx context.Context, f Filter) ([]Lead, int64, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, ErrInvalidStatus
	}
	return s.store.List(ctx, f)
}

// UpdateStatus moves a lead to another status
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.publish(Event{Type: EventLeadStatusChanged, LeadID: id, Status: status})
	return nil
}

// GetStats returns lead statistics
func (s *Service) GetStats(ctx context.Context) (map[Status]int64, error) {
	return s.store.CountByStatus(ctx)
}

func (s *Service) publish(e Event) {
	if s.events != nil {
		s.events.Publish(e)
	}
}
