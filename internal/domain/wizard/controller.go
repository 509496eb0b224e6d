// Package wizard drives a quote request through the step registry and hands the
// finished request to the submission pipeline.
package wizard

import (
	"context"
	"errors"
	"sync"

	"quotewizard/internal/domain/lead"
	"quotewizard/internal/domain/quote"
)

var (
	ErrSubmitting  = errors.New("submission in progress")
	ErrAtFirstStep = errors.New("already at the first step")
	ErrFinished    = errors.New("wizard already submitted")
)

// Submitter is the submission pipeline the last step hands off to
type Submitter interface {
	Submit(ctx context.Context, req quote.QuoteRequest) (*lead.Submission, error)
}

// State is a snapshot of the controller
type State struct {
	Index      int
	Step       quote.Step
	Total      int
	Progress   int
	Submitting bool
	Finished   bool
}

// Controller is the wizard state machine. Its methods may be called from several
// goroutines; submission runs outside the lock so a concurrent transition sees
// the submitting flag and is refused.
type Controller struct {
	mu         sync.Mutex
	steps      *quote.Registry
	fields     *quote.FieldStore
	submitter  Submitter
	index      int
	submitting bool
	finished   bool
}

// New creates a controller positioned at the first step with default fields
func New(steps *quote.Registry, submitter Submitter) *Controller {
	return &Controller{
		steps:     steps,
		fields:    quote.NewFieldStore(),
		submitter: submitter,
	}
}

// State returns the current snapshot
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Index:      c.index,
		Step:       c.steps.At(c.index),
		Total:      c.steps.Len(),
		Progress:   progress(c.index, c.steps.Len()),
		Submitting: c.submitting,
		Finished:   c.finished,
	}
}

// Request returns a copy of the request being edited
func (c *Controller) Request() quote.QuoteRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields.Get()
}

// Progress returns round(100*(index+1)/n)
func (c *Controller) Progress() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return progress(c.index, c.steps.Len())
}

// CanAdvance reports whether the current step's predicate holds
func (c *Controller) CanAdvance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps.At(c.index).Check(c.fields.Get()) == nil
}

// Update merges a patch into the request
func (c *Controller) Update(p quote.Patch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	p, err := c.budgetPatch(p)
	if err != nil {
		return err
	}
	if p.CampaignOptions != nil {
		if _, unknown := quote.Inventory.Normalize(p.CampaignOptions); len(unknown) > 0 {
			return quote.ErrUnknownOption
		}
	}
	c.fields.Set(p)
	return nil
}

// budgetPatch holds budget fields in a generic patch to the slider rules: a
// budget is a slider move and drops the override, an override is only taken
// at the ceiling.
func (c *Controller) budgetPatch(p quote.Patch) (quote.Patch, error) {
	slider := c.fields.Get().Budget
	if p.Budget != nil {
		if *p.Budget <= 0 {
			return p, &quote.ValidationError{Step: quote.StepBudget, Field: "budget", Message: "budget must be positive"}
		}
		slider = quote.RoundSlider(*p.Budget)
		p.Budget = quote.Int(slider)
		p.ClearBudgetOverride = true
	}
	if p.BudgetOverride != nil {
		if err := quote.ValidateOverride(slider, *p.BudgetOverride); err != nil {
			return p, err
		}
		if *p.BudgetOverride == 0 {
			p.BudgetOverride = nil
			p.ClearBudgetOverride = true
		}
	}
	return p, nil
}

// ToggleOption flips one inventory option
func (c *Controller) ToggleOption(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if !quote.Inventory.Has(id) {
		return quote.ErrUnknownOption
	}
	c.fields.Set(quote.Patch{CampaignOptions: quote.Toggle(c.fields.Get().CampaignOptions, id)})
	return nil
}

// SlideBudget commits a slider move and clears any override. It returns the
// committed value.
func (c *Controller) SlideBudget(raw int) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return 0, err
	}
	v := quote.RoundSlider(raw)
	c.fields.Set(quote.Patch{Budget: quote.Int(v), ClearBudgetOverride: true})
	return v, nil
}

// OverrideBudget sets the free-entry budget; zero clears it
func (c *Controller) OverrideBudget(v int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if err := quote.ValidateOverride(c.fields.Get().Budget, v); err != nil {
		return err
	}
	if v == 0 {
		c.fields.Set(quote.Patch{ClearBudgetOverride: true})
		return nil
	}
	c.fields.Set(quote.Patch{BudgetOverride: quote.Int(v)})
	return nil
}

// Next validates the current step and moves forward. On the last step it runs
// the submission pipeline and returns its result.
func (c *Controller) Next(ctx context.Context) (*lead.Submission, error) {
	c.mu.Lock()
	if err := c.editable(); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	req := c.fields.Get()
	if err := c.steps.At(c.index).Check(req); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if c.index < c.steps.Len()-1 {
		c.index++
		c.mu.Unlock()
		return nil, nil
	}
	c.submitting = true
	c.mu.Unlock()

	done := false
	defer func() {
		// also runs when the submitter panics
		c.mu.Lock()
		c.submitting = false
		c.finished = done
		c.mu.Unlock()
	}()

	sub, err := c.submitter.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	done = true
	return sub, nil
}

// Previous moves back one step without validation
func (c *Controller) Previous() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.editable(); err != nil {
		return err
	}
	if c.index == 0 {
		return ErrAtFirstStep
	}
	c.index--
	return nil
}

func (c *Controller) editable() error {
	if c.submitting {
		return ErrSubmitting
	}
	if c.finished {
		return ErrFinished
	}
	return nil
}

func progress(index, total int) int {
	if total <= 0 {
		return 0
	}
	// round half up in integers
	return (200*(index+1) + total) / (2 * total)
}
