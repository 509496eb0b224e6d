package lead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotewizard/internal/domain/quote"
)

func TestBuildPayload_FullRequest(t *testing.T) {
	req := validRequest()
	req.CampaignOptions = []string{"out-of-home", "crm", "crm"}
	req.Budget = quote.SliderMax
	req.BudgetOverride = quote.Int(750_000)
	req.StartMonth, req.StartYear = "03", "2025"
	req.EndMonth, req.EndYear = "06", "2025"
	req.Products = "  Café Daki  "

	p, err := BuildPayload(quote.DefaultRegistry(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"crm", "out-of-home"}, p.CampaignOptions)
	assert.Equal(t, 750_000, p.Budget)
	require.NotNil(t, p.StartDate)
	assert.Equal(t, "2025-03-01", *p.StartDate)
	assert.Equal(t, "2025-06-01", *p.EndDate)
	require.NotNil(t, p.Products)
	assert.Equal(t, "Café Daki", *p.Products)
	assert.Nil(t, p.AdditionalDetails)
}

func TestBuildPayload_PartialPeriodIsNull(t *testing.T) {
	req := validRequest()
	req.StartMonth = "03"

	p, err := BuildPayload(quote.DefaultRegistry(), req)
	require.NoError(t, err)
	assert.Nil(t, p.StartDate)
	assert.Nil(t, p.EndDate)
}

func TestBuildPayload_BadMonth(t *testing.T) {
	req := validRequest()
	req.EndMonth, req.EndYear = "13", "2025"

	_, err := BuildPayload(quote.DefaultRegistry(), req)

	var verr *quote.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, quote.StepPeriod, verr.Step)
	assert.Equal(t, "end_month", verr.Field)
}

func TestPayload_ToLead(t *testing.T) {
	start := "2025-03-01"
	p := &Payload{Name: "Ana", Email: "ana@x.com", CampaignOptions: []string{"crm"}, Budget: 50000, MainObjective: "awareness", StartDate: &start}

	l, err := p.ToLead()
	require.NoError(t, err)
	assert.Equal(t, StatusPending, l.Status)
	require.NotNil(t, l.StartDate)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *l.StartDate)
	assert.Nil(t, l.EndDate)
}

func TestSummarize(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	notes := "ligar de manhã"
	l := &Lead{
		Name:              "Ana",
		Email:             "ana@x.com",
		CampaignOptions:   []string{"crm", "paid-media"},
		Budget:            1_250_000,
		MainObjective:     "conversion",
		StartDate:         &start,
		EndDate:           &end,
		AdditionalDetails: &notes,
		Status:            StatusPending,
	}

	s := Summarize(l)
	assert.Equal(t, quote.Objectives.Label("conversion"), s.Objective)
	assert.Equal(t, quote.Inventory.Labels([]string{"crm", "paid-media"}), s.Inventory)
	assert.Equal(t, "R$ 1.250.000", s.Budget)
	assert.Equal(t, "03/2025 – 06/2025", s.Period)
	assert.Equal(t, notes, s.Notes)
	assert.Empty(t, s.Products)
}

func TestSummarize_OpenPeriod(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s := Summarize(&Lead{Budget: 10000, StartDate: &start})

	assert.Equal(t, "03/2025", s.Period)
	assert.Equal(t, "R$ 10.000", s.Budget)
}
