package quote

// Budget slider bounds
const (
	SliderMin = 10_000
	SliderMax = 500_000
)

// BudgetSlider describes the slider surface of the budget step
type BudgetSlider struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

// DefaultSlider is the slider configuration shared by every front end
var DefaultSlider = BudgetSlider{Min: SliderMin, Max: SliderMax, Default: DefaultBudget}

// StepFor returns the slider granularity at v
func StepFor(v int) int {
	switch {
	case v <= 50_000:
		return 5_000
	case v <= 150_000:
		return 10_000
	default:
		return 50_000
	}
}

// RoundSlider clamps a raw slider value to the range and snaps it to the tier step
func RoundSlider(raw int) int {
	v := min(max(raw, SliderMin), SliderMax)
	step := StepFor(v)
	return (v + step/2) / step * step
}

// ValidateSlider checks that v is a value the slider can commit: inside the
// range and on its tier step
func ValidateSlider(v int) error {
	if v != RoundSlider(v) {
		return &ValidationError{
			Step:    StepBudget,
			Field:   "budget",
			Message: "budget must be a slider position between 10000 and 500000",
		}
	}
	return nil
}

// ValidateOverride checks a free-entry budget against the current slider value.
// Zero means "no override" and is always accepted.
func ValidateOverride(slider, override int) error {
	if override == 0 {
		return nil
	}
	if slider < SliderMax {
		return ErrOverrideUnavailable
	}
	if override < SliderMax {
		return &ValidationError{
			Step:    StepBudget,
			Field:   "budget_override",
			Message: "override must be at least the slider maximum",
		}
	}
	return nil
}
