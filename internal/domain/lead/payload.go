package lead

import (
	"fmt"
	"strings"
	"time"

	"quotewizard/internal/domain/quote"
)

const dateLayout = "2006-01-02"

// Payload is the typed insert request built from a finished wizard
type Payload struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	CampaignOptions   []string `json:"campaign_options"`
	Budget            int      `json:"budget"`
	MainObjective     string   `json:"main_objective"`
	StartDate         *string  `json:"start_date"`
	EndDate           *string  `json:"end_date"`
	Products          *string  `json:"products"`
	AdditionalDetails *string  `json:"additional_details"`
}

// BuildPayload validates req against every step and maps it to a Payload.
// Dates become YYYY-MM-01 when month and year are both set; empty optional
// text becomes nil.
func BuildPayload(steps *quote.Registry, req quote.QuoteRequest) (*Payload, error) {
	if err := steps.Validate(req); err != nil {
		return nil, err
	}

	options, unknown := quote.Inventory.Normalize(req.CampaignOptions)
	if len(unknown) > 0 {
		return nil, &quote.ValidationError{
			Step:    quote.StepInventory,
			Field:   "campaign_options",
			Message: fmt.Sprintf("unknown options: %s", strings.Join(unknown, ", ")),
		}
	}

	start, err := periodDate(req.StartMonth, req.StartYear, "start")
	if err != nil {
		return nil, err
	}
	end, err := periodDate(req.EndMonth, req.EndYear, "end")
	if err != nil {
		return nil, err
	}

	return &Payload{
		Name:              strings.TrimSpace(req.Name),
		Email:             strings.TrimSpace(req.Email),
		CampaignOptions:   options,
		Budget:            req.EffectiveBudget(),
		MainObjective:     req.MainObjective,
		StartDate:         start,
		EndDate:           end,
		Products:          nullableText(req.Products),
		AdditionalDetails: nullableText(req.AdditionalDetails),
	}, nil
}

// ToLead converts the payload into a new, unsaved record
func (p *Payload) ToLead() (*Lead, error) {
	start, err := parseDate(p.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(p.EndDate)
	if err != nil {
		return nil, err
	}
	return &Lead{
		Name:              p.Name,
		Email:             p.Email,
		CampaignOptions:   append([]string{}, p.CampaignOptions...),
		Budget:            p.Budget,
		MainObjective:     p.MainObjective,
		StartDate:         start,
		EndDate:           end,
		Products:          p.Products,
		AdditionalDetails: p.AdditionalDetails,
		Status:            StatusPending,
	}, nil
}

func periodDate(month, year, side string) (*string, error) {
	m, ok, err := quote.ParseMonth(month, year)
	if err != nil {
		return nil, &quote.ValidationError{Step: quote.StepPeriod, Field: side + "_month", Message: err.Error()}
	}
	if !ok {
		return nil, nil
	}
	d := m.Date()
	return &d, nil
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", *s, err)
	}
	return &t, nil
}

func nullableText(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
