package quote

import (
	"fmt"
	"strconv"
	"strings"
)

// Step ids, in wizard order
const (
	StepObjective = "objetivo"
	StepInventory = "inventario"
	StepBudget    = "orcamento"
	StepPeriod    = "periodo"
	StepProducts  = "produtos"
	StepContact   = "contato"
)

// Input identifies the input surface a step owns
type Input string

const (
	InputObjective Input = "objective"
	InputInventory Input = "inventory"
	InputBudget    Input = "budget"
	InputPeriod    Input = "period"
	InputProducts  Input = "products"
	InputContact   Input = "contact"
)

// Step is one wizard screen
type Step struct {
	ID       string        `json:"id"`
	Label    string        `json:"label"`
	Prompt   string        `json:"prompt"`
	Input    Input         `json:"input"`
	Fields   []string      `json:"fields"`
	Selector *Selector     `json:"selector,omitempty"`
	Slider   *BudgetSlider `json:"slider,omitempty"`

	// Valid reports whether the wizard may leave this step
	Valid func(QuoteRequest) bool `json:"-"`
	// Reason is shown when Valid fails
	Reason string `json:"-"`
}

// Check runs the predicate and returns a ValidationError when it fails
func (s Step) Check(r QuoteRequest) error {
	if s.Valid == nil || s.Valid(r) {
		return nil
	}
	field := ""
	if len(s.Fields) > 0 {
		field = s.Fields[0]
	}
	return &ValidationError{Step: s.ID, Field: field, Message: s.Reason}
}

// Registry is the ordered, immutable list of steps
type Registry struct {
	steps []Step
}

// NewRegistry builds a registry; ids must be unique
func NewRegistry(steps ...Step) (*Registry, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("registry needs at least one step")
	}
	seen := make(map[string]bool, len(steps))
	for _, s := range steps {
		if s.ID == "" {
			return nil, fmt.Errorf("step without id")
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate step id %q", s.ID)
		}
		seen[s.ID] = true
	}
	out := make([]Step, len(steps))
	copy(out, steps)
	return &Registry{steps: out}, nil
}

// Steps returns the steps in order
func (r *Registry) Steps() []Step {
	out := make([]Step, len(r.steps))
	copy(out, r.steps)
	return out
}

// Len returns the number of steps
func (r *Registry) Len() int { return len(r.steps) }

// At returns the step at index i
func (r *Registry) At(i int) Step { return r.steps[i] }

// Validate checks every step in order and returns the first failure
func (r *Registry) Validate(req QuoteRequest) error {
	for _, s := range r.steps {
		if err := s.Check(req); err != nil {
			return err
		}
	}
	return nil
}

var defaultRegistry = mustRegistry(
	Step{
		ID:       StepObjective,
		Label:    "Objetivo",
		Prompt:   "Qual é o objetivo principal da sua campanha?",
		Input:    InputObjective,
		Fields:   []string{"main_objective"},
		Selector: &Selector{Options: Objectives, Layout: LayoutRow},
		Valid:    ValidObjective,
		Reason:   "choose a campaign objective",
	},
	Step{
		ID:       StepInventory,
		Label:    "Inventário",
		Prompt:   "Quais opções de inventário te interessam?",
		Input:    InputInventory,
		Fields:   []string{"campaign_options"},
		Selector: &Selector{Options: Inventory, Layout: LayoutGrid, Multi: true},
		Valid:    ValidInventory,
		Reason:   "select at least one inventory option",
	},
	Step{
		ID:     StepBudget,
		Label:  "Orçamento",
		Prompt: "Qual é o orçamento disponível para a campanha?",
		Input:  InputBudget,
		Fields: []string{"budget", "budget_override"},
		Slider: &DefaultSlider,
		Valid:  ValidBudget,
		Reason: "budget must be positive",
	},
	Step{
		ID:     StepPeriod,
		Label:  "Período",
		Prompt: "Qual o período da campanha?",
		Input:  InputPeriod,
		Fields: []string{"start_month", "start_year", "end_month", "end_year"},
	},
	Step{
		ID:     StepProducts,
		Label:  "Produtos & Detalhes",
		Prompt: "Quais produtos deseja incluir na campanha?",
		Input:  InputProducts,
		Fields: []string{"products", "additional_details"},
	},
	Step{
		ID:     StepContact,
		Label:  "Contato",
		Prompt: "Para finalizarmos, precisamos dos seus dados de contato:",
		Input:  InputContact,
		Fields: []string{"name", "email"},
		Valid:  ValidContact,
		Reason: "name and email are required",
	},
)

// DefaultRegistry returns the six-step quote wizard
func DefaultRegistry() *Registry { return defaultRegistry }

func mustRegistry(steps ...Step) *Registry {
	r, err := NewRegistry(steps...)
	if err != nil {
		panic(err)
	}
	return r
}

// ValidObjective requires one of the fixed objectives
func ValidObjective(r QuoteRequest) bool {
	return r.MainObjective != "" && Objectives.Has(r.MainObjective)
}

// ValidInventory requires at least one catalog option
func ValidInventory(r QuoteRequest) bool {
	for _, id := range r.CampaignOptions {
		if Inventory.Has(id) {
			return true
		}
	}
	return false
}

// ValidBudget requires a positive budget
func ValidBudget(r QuoteRequest) bool {
	return r.EffectiveBudget() > 0
}

// ValidContact requires name and email to be present
func ValidContact(r QuoteRequest) bool {
	return strings.TrimSpace(r.Name) != "" && strings.TrimSpace(r.Email) != ""
}

// Month is a month+year pair picked on the period step
type Month struct {
	Year  int
	Month int
}

// ParseMonth reads a month/year pair. ok is false when either part is empty.
func ParseMonth(month, year string) (m Month, ok bool, err error) {
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)
	if month == "" || year == "" {
		return Month{}, false, nil
	}
	mm, err := strconv.Atoi(month)
	if err != nil || mm < 1 || mm > 12 {
		return Month{}, false, fmt.Errorf("invalid month %q", month)
	}
	yy, err := strconv.Atoi(year)
	if err != nil || yy < 1000 || yy > 9999 {
		return Month{}, false, fmt.Errorf("invalid year %q", year)
	}
	return Month{Year: yy, Month: mm}, true, nil
}

// Date returns the canonical first-of-month date
func (m Month) Date() string {
	return fmt.Sprintf("%04d-%02d-01", m.Year, m.Month)
}

// String formats as MM/YYYY
func (m Month) String() string {
	return fmt.Sprintf("%02d/%04d", m.Month, m.Year)
}
