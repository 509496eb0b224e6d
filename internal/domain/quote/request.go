package quote

import "slices"

// DefaultBudget is the slider position a new request starts at
const DefaultBudget = 50_000

// Objective values
const (
	ObjectiveAwareness     = "awareness"
	ObjectiveConsideration = "consideration"
	ObjectiveConversion    = "conversion"
)

// QuoteRequest is the in-progress quote request edited by the wizard
type QuoteRequest struct {
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	CampaignOptions   []string `json:"campaign_options"`
	Budget            int      `json:"budget"`
	BudgetOverride    *int     `json:"budget_override,omitempty"`
	MainObjective     string   `json:"main_objective"`
	StartMonth        string   `json:"start_month"`
	StartYear         string   `json:"start_year"`
	EndMonth          string   `json:"end_month"`
	EndYear           string   `json:"end_year"`
	Products          string   `json:"products"`
	AdditionalDetails string   `json:"additional_details"`
}

// NewRequest returns a request with wizard defaults
func NewRequest() QuoteRequest {
	return QuoteRequest{
		CampaignOptions: []string{},
		Budget:          DefaultBudget,
	}
}

// EffectiveBudget returns the free-entry override when present, else the slider value
func (r QuoteRequest) EffectiveBudget() int {
	if r.BudgetOverride != nil {
		return *r.BudgetOverride
	}
	return r.Budget
}

// HasOption reports whether id is selected
func (r QuoteRequest) HasOption(id string) bool {
	return slices.Contains(r.CampaignOptions, id)
}

// Clone returns a deep copy
func (r QuoteRequest) Clone() QuoteRequest {
	out := r
	out.CampaignOptions = slices.Clone(r.CampaignOptions)
	if out.CampaignOptions == nil {
		out.CampaignOptions = []string{}
	}
	if r.BudgetOverride != nil {
		v := *r.BudgetOverride
		out.BudgetOverride = &v
	}
	return out
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name              *string
	Email             *string
	CampaignOptions   []string
	Budget            *int
	MainObjective     *string
	StartMonth        *string
	StartYear         *string
	EndMonth          *string
	EndYear           *string
	Products          *string
	AdditionalDetails *string

	// BudgetOverride sets the override; ClearBudgetOverride drops it
	BudgetOverride      *int
	ClearBudgetOverride bool
}

// String returns a pointer to s, for building patches
func String(s string) *string { return &s }

// Int returns a pointer to v, for building patches
func Int(v int) *int { return &v }

// FieldStore holds the request being edited. It does no validation.
type FieldStore struct {
	req QuoteRequest
}

// NewFieldStore creates a store seeded with defaults
func NewFieldStore() *FieldStore {
	return &FieldStore{req: NewRequest()}
}

// Get returns a copy of the current request
func (s *FieldStore) Get() QuoteRequest {
	return s.req.Clone()
}

// Set merges the given fields into the current request
func (s *FieldStore) Set(p Patch) {
	r := &s.req
	setString(&r.Name, p.Name)
	setString(&r.Email, p.Email)
	setString(&r.MainObjective, p.MainObjective)
	setString(&r.StartMonth, p.StartMonth)
	setString(&r.StartYear, p.StartYear)
	setString(&r.EndMonth, p.EndMonth)
	setString(&r.EndYear, p.EndYear)
	setString(&r.Products, p.Products)
	setString(&r.AdditionalDetails, p.AdditionalDetails)

	if p.CampaignOptions != nil {
		r.CampaignOptions = slices.Clone(p.CampaignOptions)
	}
	if p.Budget != nil {
		r.Budget = *p.Budget
	}
	if p.ClearBudgetOverride {
		r.BudgetOverride = nil
	}
	if p.BudgetOverride != nil {
		v := *p.BudgetOverride
		r.BudgetOverride = &v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
