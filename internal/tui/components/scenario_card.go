package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/output"
	"github.com/rgehrsitz/dcasim/internal/tui/tuistyles"
)

// ScenarioCard shows a configured scenario's resolved inputs, or why they
// could not be resolved.
type ScenarioCard struct {
	Name        string
	Description string
	Input       domain.SimulationInput
	Step        float64
	Err         error
	Money       output.Money
	Selected    bool
	Width       int
}

// NewScenarioCard resolves sc against the configuration defaults.
func NewScenarioCard(sc *domain.Scenario, defaults domain.Defaults, money output.Money) *ScenarioCard {
	card := &ScenarioCard{
		Name:        sc.Name,
		Description: sc.Description,
		Step:        sc.Step(defaults),
		Money:       money,
		Width:       50,
	}
	card.Input, card.Err = sc.ToInput(defaults)
	return card
}

// Summary is the short form used in lists, e.g. "$500/mo · 7.00% · 10y".
func (c *ScenarioCard) Summary() string {
	if c.Err != nil {
		return "invalid"
	}
	return fmt.Sprintf("%s/mo · %s · %dy",
		c.Money.Amount(c.Input.MonthlyContribution),
		output.FormatRate(c.Input.AnnualReturnRate),
		c.Input.DurationYears)
}

// Rows lists the label/value pairs shown on the full card.
func (c *ScenarioCard) Rows() [][2]string {
	in := c.Input
	invested := in.InitialCapital + in.MonthlyContribution*float64(in.Months())
	return [][2]string{
		{"Monthly", c.Money.Amount(in.MonthlyContribution)},
		{"Initial capital", c.Money.Amount(in.InitialCapital)},
		{"Annual return", output.FormatRate(in.AnnualReturnRate)},
		{"Duration", fmt.Sprintf("%d years", in.DurationYears)},
		{"Inflation", output.FormatRate(in.AnnualInflationRate)},
		{"Total invested", c.Money.Amount(invested)},
		{"Milestone step", c.Money.Short(c.Step)},
	}
}

// Render draws the card; the border is highlighted when selected.
func (c *ScenarioCard) Render() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Name))
	if c.Description != "" {
		b.WriteString("\n" + tuistyles.SubtitleStyle.Render(c.Description))
	}
	b.WriteString("\n")

	if c.Err != nil {
		b.WriteString("\n" + tuistyles.ErrorStyle.Render(c.Err.Error()))
	} else {
		for _, r := range c.Rows() {
			b.WriteString(fmt.Sprintf("\n%s %s",
				tuistyles.MetricLabelStyle.Render(fmt.Sprintf("%-16s", r[0])),
				tuistyles.ParameterValueStyle.Render(r[1])))
		}
	}

	border := tuistyles.ColorBorder
	if c.Selected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2).
		Width(c.Width).
		Render(b.String())
}

// ScenarioMenu renders one line per card with names aligned, marking the
// selected one.
func ScenarioMenu(cards []*ScenarioCard, selected int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios available")
	}

	nameWidth := 0
	for _, c := range cards {
		nameWidth = max(nameWidth, lipgloss.Width(c.Name))
	}

	lines := make([]string, len(cards))
	for i, c := range cards {
		prefix, style := "  ", tuistyles.UnselectedItemStyle
		if i == selected {
			prefix, style = "▸ ", tuistyles.SelectedItemStyle
		}
		name := c.Name + strings.Repeat(" ", nameWidth-lipgloss.Width(c.Name))
		lines[i] = style.Render(prefix+name) + "  " + tuistyles.HelpDescStyle.Render(c.Summary())
	}
	return strings.Join(lines, "\n")
}
