package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/dcasim/internal/calculation"
	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/output"
)

func TestParameterSlider_IncrementClamps(t *testing.T) {
	s := NewParameterSlider("monthly_contribution", "Monthly", 500, 0, 5000, 50)

	assert.True(t, s.Increment())
	assert.Equal(t, 550.0, s.Value)

	require.NoError(t, s.SetValue(5000))
	assert.False(t, s.Increment(), "already at max")
	assert.Equal(t, 5000.0, s.Value)

	require.NoError(t, s.SetValue(0))
	assert.False(t, s.Decrement(), "already at min")
}

func TestParameterSlider_PercentSteps(t *testing.T) {
	s := NewParameterSlider("annual_return_rate", "Return", 0.07, -0.1, 0.2, 0.005).AsPercent()

	assert.True(t, s.Increment())
	assert.Equal(t, 0.075, s.Value)
	assert.Equal(t, "7.5", s.EntryString(s.Value))
}

func TestParameterSlider_ParseEntry(t *testing.T) {
	rate := NewParameterSlider("annual_return_rate", "Return", 0.07, -0.1, 0.2, 0.005).AsPercent()
	require.NoError(t, rate.ParseEntry(" 8.5% "))
	assert.InDelta(t, 0.085, rate.Value, 1e-12)

	amount := NewParameterSlider("initial_capital", "Initial", 0, 0, 1000000, 5000)
	require.NoError(t, amount.ParseEntry("25,000"))
	assert.Equal(t, 25000.0, amount.Value)

	years := NewParameterSlider("duration_years", "Duration", 10, 1, 50, 1).AsWhole()
	tests := []struct {
		name  string
		input string
	}{
		{"not a number", "ten"},
		{"fractional", "10.5"},
		{"out of range", "60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, years.ParseEntry(tt.input))
			assert.Equal(t, 10.0, years.Value)
		})
	}
}

func TestParameterSlider_ResetWidensRange(t *testing.T) {
	s := NewParameterSlider("duration_years", "Duration", 10, 1, 50, 1)
	s.Reset(80)
	assert.Equal(t, 80.0, s.Value)
	assert.Equal(t, 80.0, s.Max)
	assert.Equal(t, 1.0, s.Percentage())
}

func TestParameterSlider_Render(t *testing.T) {
	s := NewParameterSlider("annual_return_rate", "Annual Return", 0.07, 0, 0.1, 0.005).
		AsPercent().
		WithDisplay(output.FormatRate).
		WithDescription("Nominal yearly return").
		SetFocused(true)

	out := s.Render()
	assert.Contains(t, out, "Annual Return")
	assert.Contains(t, out, "7.00%")
	assert.Contains(t, out, "0.00% ─ 10.00%")
	assert.Contains(t, out, "Nominal yearly return")
	assert.Equal(t, "Annual Return: 7.00%", s.RenderCompact())
}

func TestSummaryPanel_Tiles(t *testing.T) {
	p, err := calculation.NewProjectionEngine().Project(domain.SimulationInput{
		MonthlyContribution: 500,
		AnnualReturnRate:    0.07,
		DurationYears:       10,
		AnnualInflationRate: 0.02,
	})
	require.NoError(t, err)

	panel := NewSummaryPanel(p, output.NewMoney("", ""))
	tiles := panel.Tiles()
	require.Len(t, tiles, 4)
	assert.Equal(t, "Total Invested", tiles[0].Label)
	assert.Equal(t, "$60,000", tiles[0].Value)
	assert.Equal(t, "$87,047", tiles[1].Value)
	assert.True(t, strings.HasPrefix(tiles[1].Note, "real $"))
	assert.Equal(t, 1, tiles[2].Trend)
	assert.Equal(t, "CAGR", tiles[3].Label)

	out := panel.Render(2)
	assert.Contains(t, out, "Final Value")
	assert.Contains(t, out, "▲")
}

func TestSummaryPanel_UndefinedCAGR(t *testing.T) {
	p, err := calculation.NewProjectionEngine().Project(domain.SimulationInput{DurationYears: 5})
	require.NoError(t, err)

	tiles := NewSummaryPanel(p, output.NewMoney("", "")).Tiles()
	assert.Equal(t, "—", tiles[3].Value)
	assert.Equal(t, "undefined", tiles[3].Note)
	assert.Equal(t, 0, tiles[2].Trend)
	assert.Empty(t, tiles[2].Note)
}

func TestASCIIChart_NoData(t *testing.T) {
	chart := NewASCIIChart("Empty")
	assert.Contains(t, chart.Render(), "No data to display")
}

func TestASCIIChart_MarkerColumns(t *testing.T) {
	chart := NewASCIIChart("Growth").
		WithSize(60, 10).
		AddSeries("Portfolio", []float64{0, 10, 20}, "#00FF00").
		WithMarkers([]ChartMarker{{Pos: 0}, {Pos: 0.5}, {Pos: 1.2}})

	width := chart.PlotWidth()
	assert.Equal(t, 47, width)
	assert.Equal(t, []int{0, 23, width - 1}, chart.MarkerColumns())
}

func TestASCIIChart_Render(t *testing.T) {
	chart := NewASCIIChart("Growth").
		WithSize(60, 8).
		AddSeries("Portfolio", []float64{0, 50000, 150000}, "#00FF00").
		AddSeries("Invested", []float64{0, 40000, 80000}, "#888888").
		WithMarkers([]ChartMarker{{Pos: 0.7, Label: "$100K"}}).
		WithLabels([]string{"Year 0", "Year 2"})
	chart.YFormat = func(v float64) string { return "Y" }

	out := chart.Render()
	assert.Contains(t, out, "Growth")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "▲")
	assert.Contains(t, out, "Year 0")
	assert.Contains(t, out, "Year 2")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "milestone")
	assert.Contains(t, out, "Y │")
}

func TestFormatChartValue(t *testing.T) {
	assert.Equal(t, "1.5M", formatChartValue(1500000))
	assert.Equal(t, "250K", formatChartValue(250000))
	assert.Equal(t, "999", formatChartValue(999))
}

func TestMilestoneList_Render(t *testing.T) {
	engine := calculation.NewProjectionEngine()
	p, err := engine.Project(domain.SimulationInput{
		MonthlyContribution: 500,
		InitialCapital:      10000,
		AnnualReturnRate:    0.08,
		DurationYears:       20,
	})
	require.NoError(t, err)

	out := NewMilestoneList(p, output.NewMoney("", "")).Render()
	assert.Contains(t, out, "Milestones")
	assert.Contains(t, out, "$100K: 9.08 yrs")
	assert.Contains(t, out, "$300K: 18.58 yrs")
	assert.Contains(t, out, "100K→200K: 5.67 yrs")
	assert.Equal(t, 3, strings.Count(out, "▲"))
}

func TestMilestoneList_NoMilestones(t *testing.T) {
	out := NewMilestoneList(nil, output.NewMoney("", "")).Render()
	assert.Contains(t, out, output.NoMilestonesMessage)
}

func TestScenarioCard(t *testing.T) {
	defaults := domain.Defaults{}
	base := domain.ScenarioFromInput("Base", domain.SimulationInput{
		MonthlyContribution: 500,
		AnnualReturnRate:    0.07,
		DurationYears:       10,
	})
	broken := domain.Scenario{Name: "Broken", Description: "no duration"}
	money := output.NewMoney("", "")

	cards := []*ScenarioCard{
		NewScenarioCard(&base, defaults, money),
		NewScenarioCard(&broken, defaults, money),
	}
	require.NoError(t, cards[0].Err)
	assert.Equal(t, "$500/mo · 7.00% · 10y", cards[0].Summary())
	assert.Equal(t, "$100K", money.Short(cards[0].Step))

	out := cards[0].Render()
	assert.Contains(t, out, "Total invested   $60,000")
	assert.Contains(t, out, "Milestone step   $100K")

	require.Error(t, cards[1].Err)
	assert.Equal(t, "invalid", cards[1].Summary())
	assert.Contains(t, cards[1].Render(), "no duration")

	menu := ScenarioMenu(cards, 1)
	assert.Contains(t, menu, "  Base    $500/mo · 7.00% · 10y")
	assert.Contains(t, menu, "▸ Broken  invalid")
	assert.Contains(t, ScenarioMenu(nil, 0), "No scenarios available")
}
