// Package tui is the terminal front end of the quote wizard. It drives the
// same controller and submission pipeline as the HTTP API.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quotewizard/internal/domain/lead"
	"quotewizard/internal/domain/quote"
	"quotewizard/internal/domain/wizard"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	promptStyle   = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	boxStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5B8DEF")).
			Padding(1, 2)
)

var fieldLabels = map[string]string{
	"start_month":        "Mês de início (1-12)",
	"start_year":         "Ano de início",
	"end_month":          "Mês de término (1-12)",
	"end_year":           "Ano de término",
	"products":           "Produtos",
	"additional_details": "Detalhes adicionais",
	"name":               "Nome",
	"email":              "Email",
}

// advancedMsg carries the result of the final Next call, run off the update loop
type advancedMsg struct {
	sub *lead.Submission
	err error
}

// Model is the bubbletea model of the wizard
type Model struct {
	ctx  context.Context
	ctrl *wizard.Controller

	cursor   int
	inputs   []textinput.Model
	fields   []string
	focus    int
	override textinput.Model
	editing  bool

	bar     progress.Model
	spinner spinner.Model

	busy   bool
	err    error
	result *lead.Submission
	width  int
}

// New creates a model positioned at the controller's current step
func New(ctx context.Context, ctrl *wizard.Controller) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ov := textinput.New()
	ov.Placeholder = "Valor acima de R$ 500.000"
	ov.CharLimit = 12

	m := &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		override: ov,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner:  sp,
	}
	m.loadStep()
	return m
}

// Result returns the submission once the wizard has finished
func (m *Model) Result() *lead.Submission { return m.result }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case advancedMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		if msg.sub != nil {
			m.result = msg.sub
			return m, nil
		}
		m.loadStep()
		return m, nil
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateInputs(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.result != nil {
		if msg.Type == tea.KeyEnter || msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.busy {
		return m, nil
	}
	if msg.Type == tea.KeyEsc {
		if m.editing {
			m.stopOverride()
			return m, nil
		}
		return m.back()
	}

	switch m.ctrl.State().Step.Input {
	case quote.InputObjective:
		return m.objectiveKey(msg)
	case quote.InputInventory:
		return m.inventoryKey(msg)
	case quote.InputBudget:
		return m.budgetKey(msg)
	default:
		return m.textKey(msg)
	}
}

func (m *Model) objectiveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyUp:
		m.moveCursor(-1, len(quote.Objectives))
	case tea.KeyRight, tea.KeyDown:
		m.moveCursor(1, len(quote.Objectives))
	case tea.KeySpace:
		m.setErr(m.ctrl.Update(quote.Patch{MainObjective: quote.String(quote.Objectives[m.cursor].ID)}))
	case tea.KeyEnter:
		if err := m.ctrl.Update(quote.Patch{MainObjective: quote.String(quote.Objectives[m.cursor].ID)}); err != nil {
			m.err = err
			return m, nil
		}
		return m.next()
	}
	return m, nil
}

func (m *Model) inventoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp, tea.KeyLeft:
		m.moveCursor(-1, len(quote.Inventory))
	case tea.KeyDown, tea.KeyRight:
		m.moveCursor(1, len(quote.Inventory))
	case tea.KeySpace:
		m.setErr(m.ctrl.ToggleOption(quote.Inventory[m.cursor].ID))
	case tea.KeyEnter:
		return m.next()
	}
	return m, nil
}

func (m *Model) budgetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		if msg.Type == tea.KeyEnter {
			return m.commitOverride()
		}
		var cmd tea.Cmd
		m.override, cmd = m.override.Update(msg)
		return m, cmd
	}

	budget := m.ctrl.Request().Budget
	switch {
	case msg.Type == tea.KeyLeft || msg.Type == tea.KeyDown:
		_, err := m.ctrl.SlideBudget(budget - quote.StepFor(budget-1))
		m.setErr(err)
	case msg.Type == tea.KeyRight || msg.Type == tea.KeyUp:
		// step size of the tier above, so 150000 moves on to 200000
		_, err := m.ctrl.SlideBudget(budget + quote.StepFor(budget+1))
		m.setErr(err)
	case msg.String() == "o":
		if budget < quote.SliderMax {
			m.err = quote.ErrOverrideUnavailable
			return m, nil
		}
		m.editing = true
		m.err = nil
		return m, m.override.Focus()
	case msg.Type == tea.KeyEnter:
		return m.next()
	}
	return m, nil
}

func (m *Model) commitOverride() (tea.Model, tea.Cmd) {
	raw := strings.NewReplacer(".", "", " ", "", "R$", "").Replace(strings.TrimSpace(m.override.Value()))
	v := 0
	if raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			m.err = fmt.Errorf("valor inválido: %q", m.override.Value())
			return m, nil
		}
		v = n
	}
	if err := m.ctrl.OverrideBudget(v); err != nil {
		m.err = err
		return m, nil
	}
	m.stopOverride()
	return m, nil
}

func (m *Model) stopOverride() {
	m.editing = false
	m.override.Blur()
	m.override.SetValue("")
	m.err = nil
}

func (m *Model) textKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		return m, m.focusInput(m.focus + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.focusInput(m.focus - 1)
	case tea.KeyEnter:
		if m.focus < len(m.inputs)-1 {
			return m, m.focusInput(m.focus + 1)
		}
		if err := m.ctrl.Update(m.patchFromInputs()); err != nil {
			m.err = err
			return m, nil
		}
		return m.next()
	}
	return m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// next moves to the following step in place. The last step submits off the
// update loop, since storage and mail delivery may block; keys are ignored
// until the result arrives.
func (m *Model) next() (tea.Model, tea.Cmd) {
	state := m.ctrl.State()
	if err := state.Step.Check(m.ctrl.Request()); err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	if state.Index < state.Total-1 {
		if _, err := m.ctrl.Next(m.ctx); err != nil {
			m.err = err
			return m, nil
		}
		m.loadStep()
		return m, nil
	}

	ctx, ctrl := m.ctx, m.ctrl
	submit := func() tea.Msg {
		sub, err := ctrl.Next(ctx)
		return advancedMsg{sub: sub, err: err}
	}
	m.busy = true
	return m, tea.Batch(submit, m.spinner.Tick)
}

func (m *Model) back() (tea.Model, tea.Cmd) {
	if len(m.inputs) > 0 {
		// keep what was typed so it is there on return
		m.setErr(m.ctrl.Update(m.patchFromInputs()))
	}
	if err := m.ctrl.Previous(); err != nil {
		if errors.Is(err, wizard.ErrAtFirstStep) {
			return m, nil
		}
		m.err = err
		return m, nil
	}
	m.err = nil
	m.loadStep()
	return m, nil
}

// loadStep resets per-step UI state from the controller
func (m *Model) loadStep() {
	step := m.ctrl.State().Step
	req := m.ctrl.Request()
	m.cursor = 0
	m.editing = false
	m.inputs = nil
	m.fields = nil
	m.focus = 0

	switch step.Input {
	case quote.InputObjective:
		for i, o := range quote.Objectives {
			if o.ID == req.MainObjective {
				m.cursor = i
			}
		}
	case quote.InputPeriod, quote.InputProducts, quote.InputContact:
		m.fields = step.Fields
		for _, f := range step.Fields {
			in := textinput.New()
			in.Placeholder = fieldLabels[f]
			in.Width = 40
			in.SetValue(fieldValue(req, f))
			m.inputs = append(m.inputs, in)
		}
		m.focusInput(0)
	}
}

func (m *Model) focusInput(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	i = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) moveCursor(delta, n int) {
	m.cursor = (m.cursor + delta + n) % n
}

func (m *Model) setErr(err error) {
	m.err = err
}

func (m *Model) patchFromInputs() quote.Patch {
	var p quote.Patch
	for i, f := range m.fields {
		v := quote.String(strings.TrimSpace(m.inputs[i].Value()))
		switch f {
		case "start_month":
			p.StartMonth = v
		case "start_year":
			p.StartYear = v
		case "end_month":
			p.EndMonth = v
		case "end_year":
			p.EndYear = v
		case "products":
			p.Products = v
		case "additional_details":
			p.AdditionalDetails = v
		case "name":
			p.Name = v
		case "email":
			p.Email = v
		}
	}
	return p
}

func fieldValue(r quote.QuoteRequest, field string) string {
	switch field {
	case "start_month":
		return r.StartMonth
	case "start_year":
		return r.StartYear
	case "end_month":
		return r.EndMonth
	case "end_year":
		return r.EndYear
	case "products":
		return r.Products
	case "additional_details":
		return r.AdditionalDetails
	case "name":
		return r.Name
	case "email":
		return r.Email
	}
	return ""
}

func (m *Model) View() string {
	if m.result != nil {
		return m.summaryView()
	}

	state := m.ctrl.State()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Cotação · Daki Retail Media"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n", m.bar.ViewAs(float64(state.Progress)/100), mutedStyle.Render(fmt.Sprintf("%d/%d %s", state.Index+1, state.Total, state.Step.Label))))
	b.WriteString(promptStyle.Render(state.Step.Prompt))
	b.WriteString("\n")

	req := m.ctrl.Request()
	switch state.Step.Input {
	case quote.InputObjective:
		b.WriteString(m.selectorView(quote.Objectives, func(id string) bool { return req.MainObjective == id }))
	case quote.InputInventory:
		b.WriteString(m.selectorView(quote.Inventory, req.HasOption))
	case quote.InputBudget:
		b.WriteString(m.budgetView(req))
	default:
		for i, in := range m.inputs {
			b.WriteString(mutedStyle.Render(fieldLabels[m.fields[i]]))
			b.WriteString("\n")
			b.WriteString(in.View())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.busy {
		b.WriteString(m.spinner.View() + " Enviando...\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(errorText(m.err)))
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(helpText(state.Step.Input, m.editing)))
	return b.String()
}

func (m *Model) selectorView(c quote.Catalog, selected func(string) bool) string {
	var b strings.Builder
	for i, o := range c {
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		mark := "[ ]"
		label := o.Icon + " " + o.Label
		if selected(o.ID) {
			mark = "[x]"
			label = selectedStyle.Render(label)
		}
		line := pointer + mark + " " + label
		if o.Description != "" {
			line += mutedStyle.Render("  " + o.Description)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) budgetView(req quote.QuoteRequest) string {
	const width = 30
	pos := (req.Budget - quote.SliderMin) * width / (quote.SliderMax - quote.SliderMin)
	pos = min(max(pos, 0), width)
	track := strings.Repeat("─", pos) + cursorStyle.Render("●") + strings.Repeat("─", width-pos)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s\n", lead.FormatBRL(quote.SliderMin), track, lead.FormatBRL(quote.SliderMax)))
	b.WriteString(selectedStyle.Render(lead.FormatBRL(req.EffectiveBudget())))
	if req.BudgetOverride != nil {
		b.WriteString(mutedStyle.Render("  (valor informado)"))
	}
	b.WriteString("\n")
	if m.editing {
		b.WriteString(m.override.View() + "\n")
	}
	return b.String()
}

func (m *Model) summaryView() string {
	s := m.result.Summary
	rows := [][2]string{
		{"Nome", s.Name},
		{"Email", s.Email},
		{"Objetivo", s.Objective},
		{"Inventário", strings.Join(s.Inventory, ", ")},
		{"Orçamento", s.Budget},
		{"Período", s.Period},
		{"Produtos", s.Products},
		{"Detalhes", s.Notes},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Pedido de cotação enviado!"))
	b.WriteString("\n\n")
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("%-12s %s\n", r[0]+":", r[1]))
	}
	if !m.result.NotificationSent() {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Seu pedido foi salvo, mas a equipe ainda não foi notificada."))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("enter para sair"))
	return boxStyle.Render(b.String())
}

func errorText(err error) string {
	var ve *quote.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var pe *lead.PersistenceError
	if errors.As(err, &pe) {
		return "Não foi possível salvar seu pedido, tente novamente"
	}
	return err.Error()
}

func helpText(input quote.Input, editing bool) string {
	switch {
	case editing:
		return "enter confirmar · esc cancelar"
	case input == quote.InputObjective:
		return "←/→ mover · enter escolher · ctrl+c sair"
	case input == quote.InputInventory:
		return "↑/↓ mover · espaço marcar · enter avançar · esc voltar"
	case input == quote.InputBudget:
		return "←/→ ajustar · o valor acima do máximo · enter avançar · esc voltar"
	}
	return "tab próximo campo · enter avançar · esc voltar"
}
