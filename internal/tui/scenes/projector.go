package scenes

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/output"
	"github.com/rgehrsitz/dcasim/internal/tui/components"
	"github.com/rgehrsitz/dcasim/internal/tui/tuimsg"
	"github.com/rgehrsitz/dcasim/internal/tui/tuistyles"
)

// Slider order in the projector.
const (
	SliderMonthly = iota
	SliderInitial
	SliderReturn
	SliderDuration
	SliderInflation
)

// DefaultInput is projected when no scenario file is loaded.
var DefaultInput = domain.SimulationInput{
	MonthlyContribution: 500,
	AnnualReturnRate:    0.07,
	DurationYears:       10,
}

// ProjectorModel is the interactive projection scene: sliders on the
// left, results of the latest projection on the right.
type ProjectorModel struct {
	sliders  []*components.ParameterSlider
	focused  int
	original domain.SimulationInput

	entry    textinput.Model
	editing  bool
	entryErr error

	projection  *domain.Projection
	projErr     error
	calculating bool

	money        output.Money
	scenarioName string
	width        int
	height       int
}

// NewProjectorModel creates the scene seeded with in.
func NewProjectorModel(in domain.SimulationInput, money output.Money) *ProjectorModel {
	entry := textinput.New()
	entry.Prompt = "= "
	entry.CharLimit = 20
	entry.Width = 20

	m := &ProjectorModel{entry: entry, money: money}
	m.buildSliders()
	m.SetInput(in)
	return m
}

func (m *ProjectorModel) buildSliders() {
	amount := func(v float64) string { return m.money.Amount(v) }
	years := func(v float64) string { return fmt.Sprintf("%.0f years", v) }

	m.sliders = []*components.ParameterSlider{
		SliderMonthly: components.NewParameterSlider("monthly_contribution", "Monthly Contribution", 0, 0, 5000, 50).
			WithDisplay(amount).
			WithDescription("Added at the start of every month"),
		SliderInitial: components.NewParameterSlider("initial_capital", "Initial Capital", 0, 0, 1000000, 5000).
			WithDisplay(amount).
			WithDescription("Lump sum invested at month zero"),
		SliderReturn: components.NewParameterSlider("annual_return_rate", "Annual Return", 0, -0.10, 0.20, 0.005).
			AsPercent().
			WithDisplay(output.FormatRate).
			WithDescription("Nominal yearly return, compounded monthly"),
		SliderDuration: components.NewParameterSlider("duration_years", "Duration", 1, 1, 50, 1).
			AsWhole().
			WithDisplay(years).
			WithDescription("Whole years to project"),
		SliderInflation: components.NewParameterSlider("inflation_rate", "Inflation", 0, 0, 0.10, 0.005).
			AsPercent().
			WithDisplay(output.FormatRate).
			WithDescription("Used to discount the final value"),
	}
	m.sliders[m.focused].SetFocused(true)
}

// SetInput loads in into the sliders and makes it the reset target.
func (m *ProjectorModel) SetInput(in domain.SimulationInput) {
	m.original = in
	m.sliders[SliderMonthly].Reset(in.MonthlyContribution)
	m.sliders[SliderInitial].Reset(in.InitialCapital)
	m.sliders[SliderReturn].Reset(in.AnnualReturnRate)
	m.sliders[SliderDuration].Reset(float64(in.DurationYears))
	m.sliders[SliderInflation].Reset(in.AnnualInflationRate)
}

// Input returns the current slider values as an engine input.
func (m *ProjectorModel) Input() domain.SimulationInput {
	return domain.SimulationInput{
		MonthlyContribution: m.sliders[SliderMonthly].Value,
		InitialCapital:      m.sliders[SliderInitial].Value,
		AnnualReturnRate:    m.sliders[SliderReturn].Value,
		DurationYears:       int(math.Round(m.sliders[SliderDuration].Value)),
		AnnualInflationRate: m.sliders[SliderInflation].Value,
	}
}

// SetMoney changes the currency formatting.
func (m *ProjectorModel) SetMoney(money output.Money) {
	m.money = money
}

// SetScenarioName labels the projection.
func (m *ProjectorModel) SetScenarioName(name string) {
	m.scenarioName = name
}

// SetCalculating flags a pending projection.
func (m *ProjectorModel) SetCalculating(calculating bool) {
	m.calculating = calculating
}

// SetProjection stores the result of the latest projection.
func (m *ProjectorModel) SetProjection(p *domain.Projection, err error) {
	m.calculating = false
	m.projErr = err
	if err == nil {
		m.projection = p
	}
}

// Projection returns the latest successful projection.
func (m *ProjectorModel) Projection() *domain.Projection {
	return m.projection
}

// Focused returns the index of the focused slider.
func (m *ProjectorModel) Focused() int {
	return m.focused
}

// Editing reports whether the exact-value entry is open.
func (m *ProjectorModel) Editing() bool {
	return m.editing
}

// SetSize updates the scene dimensions
func (m *ProjectorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the projector scene
func (m *ProjectorModel) Update(msg tea.Msg) (*ProjectorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.entry, cmd = m.entry.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.editing {
		return m.handleEntryKey(keyMsg)
	}
	return m.handleKeyPress(keyMsg)
}

func (m *ProjectorModel) handleKeyPress(msg tea.KeyMsg) (*ProjectorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
		m.moveFocus(-1)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
		m.moveFocus(1)
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("left", "h", "-"))):
		if m.sliders[m.focused].Decrement() {
			return m, m.inputChanged()
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("right", "l", "+", "="))):
		if m.sliders[m.focused].Increment() {
			return m, m.inputChanged()
		}
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter", "e"))):
		slider := m.sliders[m.focused]
		m.editing = true
		m.entryErr = nil
		m.entry.SetValue(slider.EntryString(slider.Value))
		m.entry.CursorEnd()
		return m, m.entry.Focus()

	case key.Matches(msg, key.NewBinding(key.WithKeys("r"))):
		m.SetInput(m.original)
		return m, m.inputChanged()
	}
	return m, nil
}

func (m *ProjectorModel) handleEntryKey(msg tea.KeyMsg) (*ProjectorModel, tea.Cmd) {
	switch {
	case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
		m.closeEntry()
		m.entryErr = nil
		return m, nil

	case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
		if err := m.sliders[m.focused].ParseEntry(m.entry.Value()); err != nil {
			m.entryErr = err
			return m, nil
		}
		m.closeEntry()
		m.entryErr = nil
		return m, m.inputChanged()
	}

	var cmd tea.Cmd
	m.entry, cmd = m.entry.Update(msg)
	return m, cmd
}

func (m *ProjectorModel) closeEntry() {
	m.editing = false
	m.entry.Blur()
	m.entry.SetValue("")
}

func (m *ProjectorModel) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}

// inputChanged snapshots the inputs now so later slider moves cannot leak
// into an earlier request.
func (m *ProjectorModel) inputChanged() tea.Cmd {
	in := m.Input()
	return func() tea.Msg {
		return tuimsg.InputChangedMsg{Input: in}
	}
}

// View renders the projector scene
func (m *ProjectorModel) View() string {
	left := m.renderInputs()
	right := m.renderResults(max(40, m.width-lipgloss.Width(left)-4))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m *ProjectorModel) renderInputs() string {
	var b strings.Builder
	title := "Inputs"
	if m.scenarioName != "" {
		title = "Inputs: " + m.scenarioName
	}
	b.WriteString(tuistyles.TitleStyle.Render(title))
	b.WriteString("\n\n")
	for _, s := range m.sliders {
		b.WriteString(s.Render())
		b.WriteString("\n\n")
	}

	if m.editing {
		b.WriteString(tuistyles.ParameterLabelStyle.Render("Enter " + m.sliders[m.focused].Label))
		if m.sliders[m.focused].Percent {
			b.WriteString(tuistyles.SubtitleStyle.Render(" (percent)"))
		}
		b.WriteString("\n")
		b.WriteString(m.entry.View())
		b.WriteString("\n")
	}
	if m.entryErr != nil {
		b.WriteString(tuistyles.ErrorStyle.Render(m.entryErr.Error()))
		b.WriteString("\n")
	}
	b.WriteString(tuistyles.HelpDescStyle.Render("↑/↓ select • ←/→ adjust • enter type value • r reset"))

	return tuistyles.BorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *ProjectorModel) renderResults(width int) string {
	if m.projErr != nil {
		return tuistyles.ErrorStyle.Render("Projection failed: " + m.projErr.Error())
	}
	if m.projection == nil {
		return tuistyles.InfoStyle.Render("Calculating...")
	}

	p := m.projection
	sections := []string{
		m.renderSummary(p),
		ProjectionChart(p, m.money, width).Render(),
		components.NewMilestoneList(p, m.money).WithWidth(width).Render(),
	}
	if m.calculating {
		sections = append(sections, tuistyles.InfoStyle.Render("Recalculating..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSummary uses the one-line summary when the terminal is short.
func (m *ProjectorModel) renderSummary(p *domain.Projection) string {
	panel := components.NewSummaryPanel(p, m.money)
	if m.height > 0 && m.height < 30 {
		return panel.Line()
	}
	return panel.Render(0)
}

// ProjectionChart plots portfolio value against money invested by year,
// with a marker for every milestone.
func ProjectionChart(p *domain.Projection, money output.Money, width int) *components.ASCIIChart {
	portfolio := make([]float64, 0, len(p.YearlySeries)+1)
	invested := make([]float64, 0, len(p.YearlySeries)+1)
	portfolio = append(portfolio, p.Input.InitialCapital)
	invested = append(invested, p.Input.InitialCapital)
	for _, pt := range p.YearlySeries {
		portfolio = append(portfolio, pt.PortfolioValue)
		invested = append(invested, pt.InvestedTotal)
	}

	markers := make([]components.ChartMarker, len(p.Milestones))
	for i, ms := range p.Milestones {
		markers[i] = components.ChartMarker{
			Pos:   ms.Years / float64(p.Input.DurationYears),
			Label: money.Short(ms.ThresholdAmount),
		}
	}

	chart := components.NewASCIIChart("Portfolio Growth").
		WithSize(width, 12).
		AddSeries("Portfolio", portfolio, tuistyles.ColorChartPortfolio).
		AddSeries("Invested", invested, tuistyles.ColorChartInvested).
		WithMarkers(markers).
		WithLabels([]string{"Year 0", fmt.Sprintf("Year %d", p.Input.DurationYears)})
	chart.YFormat = money.Short
	return chart
}
