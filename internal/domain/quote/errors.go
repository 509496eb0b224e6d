package quote

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOption       = errors.New("unknown campaign option")
	ErrOverrideUnavailable = errors.New("budget override is only available at the slider maximum")
)

// ValidationError reports a step predicate or field check that failed
type ValidationError struct {
	Step    string `json:"step"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("step %s: %s", e.Step, e.Message)
	}
	return fmt.Sprintf("step %s: %s: %s", e.Step, e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
