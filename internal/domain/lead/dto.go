package lead

import (
	"quotewizard/internal/domain/quote"
)

// SubmitQuoteRequest is the public submit body
type SubmitQuoteRequest struct {
	Name              string   `json:"name" validate:"required"`
	Email             string   `json:"email" validate:"required"`
	CampaignOptions   []string `json:"campaign_options"`
	Budget            int      `json:"budget" validate:"gte=0"`
	BudgetOverride    *int     `json:"budget_override,omitempty" validate:"omitempty,gte=0"`
	MainObjective     string   `json:"main_objective"`
	StartMonth        string   `json:"start_month,omitempty" validate:"omitempty,month"`
	StartYear         string   `json:"start_year,omitempty" validate:"omitempty,len=4,numeric"`
	EndMonth          string   `json:"end_month,omitempty" validate:"omitempty,month"`
	EndYear           string   `json:"end_year,omitempty" validate:"omitempty,len=4,numeric"`
	Products          string   `json:"products,omitempty"`
	AdditionalDetails string   `json:"additional_details,omitempty"`
}

// ToQuoteRequest converts the body into the wizard's field payload. The budget
// must be a slider position and the override follows the slider ceiling rules.
func (r *SubmitQuoteRequest) ToQuoteRequest() (quote.QuoteRequest, error) {
	req := quote.NewRequest()
	req.Name = r.Name
	req.Email = r.Email
	req.CampaignOptions = append(req.CampaignOptions, r.CampaignOptions...)
	if err := quote.ValidateSlider(r.Budget); err != nil {
		return req, err
	}
	req.Budget = r.Budget
	if r.BudgetOverride != nil && *r.BudgetOverride > 0 {
		if err := quote.ValidateOverride(r.Budget, *r.BudgetOverride); err != nil {
			return req, err
		}
		v := *r.BudgetOverride
		req.BudgetOverride = &v
	}
	req.MainObjective = r.MainObjective
	req.StartMonth = r.StartMonth
	req.StartYear = r.StartYear
	req.EndMonth = r.EndMonth
	req.EndYear = r.EndYear
	req.Products = r.Products
	req.AdditionalDetails = r.AdditionalDetails
	return req, nil
}

// SubmitQuoteResponse is returned after a successful submit
type SubmitQuoteResponse struct {
	Lead             *Lead   `json:"lead"`
	Summary          Summary `json:"summary"`
	NotificationSent bool    `json:"notification_sent"`
}

// UpdateStatusRequest changes a lead's status
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}

// ListResponse is a page of leads
type ListResponse struct {
	Leads  []Lead `json:"leads"`
	Total  int64  `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// StatsResponse holds lead counts per status
type StatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[Status]int64 `json:"by_status"`
}
