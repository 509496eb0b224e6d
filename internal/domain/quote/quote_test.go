package quote

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldStore_SetMergesOnlyGivenFields(t *testing.T) {
	s := NewFieldStore()
	s.Set(Patch{Name: String("Ana"), CampaignOptions: []string{"crm"}})
	s.Set(Patch{Email: String("ana@x.com")})

	got := s.Get()
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "ana@x.com", got.Email)
	assert.Equal(t, []string{"crm"}, got.CampaignOptions)
	assert.Equal(t, DefaultBudget, got.Budget)
	assert.Empty(t, got.MainObjective)
}

func TestFieldStore_GetReturnsCopy(t *testing.T) {
	s := NewFieldStore()
	s.Set(Patch{CampaignOptions: []string{"crm"}})

	got := s.Get()
	got.CampaignOptions[0] = "influencers"

	assert.Equal(t, []string{"crm"}, s.Get().CampaignOptions)
}

func TestFieldStore_Override(t *testing.T) {
	s := NewFieldStore()
	s.Set(Patch{Budget: Int(SliderMax), BudgetOverride: Int(750_000)})
	assert.Equal(t, 750_000, s.Get().EffectiveBudget())

	s.Set(Patch{ClearBudgetOverride: true})
	assert.Nil(t, s.Get().BudgetOverride)
	assert.Equal(t, SliderMax, s.Get().EffectiveBudget())
}

func TestNewRequest_Defaults(t *testing.T) {
	r := NewRequest()
	assert.Equal(t, 50_000, r.Budget)
	assert.NotNil(t, r.CampaignOptions)
	assert.Empty(t, r.CampaignOptions)
}

func TestToggle_IsInvolution(t *testing.T) {
	cases := [][]string{
		{},
		{"crm"},
		{"paid-media", "influencers"},
	}
	for _, start := range cases {
		for _, o := range Inventory {
			once := Toggle(start, o.ID)
			twice := Toggle(once, o.ID)
			assert.True(t, SameOptions(start, twice), "toggle %s twice on %v gave %v", o.ID, start, twice)
		}
	}
}

func TestToggle_AddsAndRemoves(t *testing.T) {
	sel := Toggle(nil, "crm")
	assert.Equal(t, []string{"crm"}, sel)
	sel = Toggle(sel, "influencers")
	assert.True(t, SameOptions([]string{"influencers", "crm"}, sel))
	sel = Toggle(sel, "crm")
	assert.Equal(t, []string{"influencers"}, sel)
}

func TestCatalog_Normalize(t *testing.T) {
	known, unknown := Inventory.Normalize([]string{"crm", "bogus", "onsite-banners", "crm"})
	assert.Equal(t, []string{"onsite-banners", "crm"}, known)
	assert.Equal(t, []string{"bogus"}, unknown)

	known, unknown = Inventory.Normalize(nil)
	assert.NotNil(t, known)
	assert.Empty(t, known)
	assert.Empty(t, unknown)
}

func TestCatalog_Sizes(t *testing.T) {
	assert.Len(t, Objectives, 3)
	assert.Len(t, Inventory, 9)
	assert.Equal(t, "CRM (Push, WhatsApp, SMS)", Inventory.Label("crm"))
	assert.Equal(t, "nope", Inventory.Label("nope"))
}

func TestStepFor_Tiers(t *testing.T) {
	assert.Equal(t, 5_000, StepFor(10_000))
	assert.Equal(t, 5_000, StepFor(50_000))
	assert.Equal(t, 10_000, StepFor(50_001))
	assert.Equal(t, 10_000, StepFor(150_000))
	assert.Equal(t, 50_000, StepFor(150_001))
	assert.Equal(t, 50_000, StepFor(500_000))
}

func TestRoundSlider_MatchesTieredRule(t *testing.T) {
	for v := SliderMin; v <= SliderMax; v += 777 {
		step := StepFor(v)
		want := int(math.Round(float64(v)/float64(step))) * step
		assert.Equal(t, want, RoundSlider(v), "raw=%d", v)
	}
}

func TestRoundSlider_Clamps(t *testing.T) {
	assert.Equal(t, SliderMin, RoundSlider(0))
	assert.Equal(t, SliderMin, RoundSlider(-5))
	assert.Equal(t, SliderMax, RoundSlider(9_000_000))
	assert.Equal(t, 25_000, RoundSlider(22_500))
	assert.Equal(t, 150_000, RoundSlider(160_000))
}

func TestValidateSlider(t *testing.T) {
	assert.NoError(t, ValidateSlider(50_000))
	assert.NoError(t, ValidateSlider(SliderMax))
	assert.True(t, IsValidation(ValidateSlider(12_345)))
	assert.True(t, IsValidation(ValidateSlider(5_000)))
	assert.True(t, IsValidation(ValidateSlider(SliderMax+50_000)))
}

func TestValidateOverride(t *testing.T) {
	assert.NoError(t, ValidateOverride(100_000, 0))
	assert.ErrorIs(t, ValidateOverride(100_000, 750_000), ErrOverrideUnavailable)
	assert.True(t, IsValidation(ValidateOverride(SliderMax, 20_000)))
	assert.NoError(t, ValidateOverride(SliderMax, 750_000))
}

func TestDefaultRegistry_Predicates(t *testing.T) {
	reg := DefaultRegistry()
	require.Equal(t, 6, reg.Len())

	ids := make([]string, 0, reg.Len())
	for _, s := range reg.Steps() {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{StepObjective, StepInventory, StepBudget, StepPeriod, StepProducts, StepContact}, ids)

	r := NewRequest()
	assert.Error(t, reg.At(0).Check(r))
	r.MainObjective = "reach"
	assert.Error(t, reg.At(0).Check(r))
	r.MainObjective = ObjectiveAwareness
	assert.NoError(t, reg.At(0).Check(r))

	assert.Error(t, reg.At(1).Check(r))
	r.CampaignOptions = []string{"bogus"}
	assert.Error(t, reg.At(1).Check(r))
	r.CampaignOptions = []string{"bogus", "crm"}
	assert.NoError(t, reg.At(1).Check(r))

	assert.NoError(t, reg.At(2).Check(r))
	r.Budget = 0
	assert.Error(t, reg.At(2).Check(r))
	r.Budget = DefaultBudget

	assert.NoError(t, reg.At(3).Check(r))
	assert.NoError(t, reg.At(4).Check(r))

	err := reg.At(5).Check(r)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, StepContact, verr.Step)
	r.Name = "Ana"
	assert.Error(t, reg.At(5).Check(r))
	r.Email = "ana@x.com"
	assert.NoError(t, reg.At(5).Check(r))

	assert.NoError(t, reg.Validate(r))
}

func TestNewRegistry_RejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(Step{ID: "a"}, Step{ID: "a"})
	assert.Error(t, err)
	_, err = NewRegistry()
	assert.Error(t, err)
}

func TestParseMonth(t *testing.T) {
	m, ok, err := ParseMonth("03", "2025")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "2025-03-01", m.Date())
	assert.Equal(t, "03/2025", m.String())

	_, ok, err = ParseMonth("03", "")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, _, err = ParseMonth("13", "2025")
	assert.Error(t, err)
	_, _, err = ParseMonth("01", "25")
	assert.Error(t, err)
}
