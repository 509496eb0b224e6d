package lead

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"quotewizard/internal/domain/quote"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// Summary is the human-readable view of a lead shown after submission and in
// notifications
type Summary struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Objective string   `json:"objective"`
	Inventory []string `json:"inventory"`
	Budget    string   `json:"budget"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
	Period    string   `json:"period,omitempty"`
	Products  string   `json:"products,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Status    Status   `json:"status"`
}

// Summarize derives display fields from a persisted lead
func Summarize(l *Lead) Summary {
	s := Summary{
		Name:      l.Name,
		Email:     l.Email,
		Objective: quote.Objectives.Label(l.MainObjective),
		Inventory: quote.Inventory.Labels(l.CampaignOptions),
		Budget:    FormatBRL(l.Budget),
		StartDate: monthYear(l.StartDate),
		EndDate:   monthYear(l.EndDate),
		Products:  deref(l.Products),
		Notes:     deref(l.AdditionalDetails),
		Status:    l.Status,
	}
	s.Period = joinNonEmpty(" – ", s.StartDate, s.EndDate)
	return s
}

// FormatBRL formats whole reais the way the wizard displays them, e.g. R$ 50.000
func FormatBRL(v int) string {
	return brl.Sprintf("R$ %d", v)
}

func monthYear(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("01/2006")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
