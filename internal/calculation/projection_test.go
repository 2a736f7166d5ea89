package calculation

import (
	"math"
	"testing"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedFormFutureValue(contribution, annualRate float64, months int) float64 {
	r := annualRate / 12
	return contribution * (1 + r) * ((math.Pow(1+r, float64(months)) - 1) / r)
}

func TestSimulateMonths_SeriesShape(t *testing.T) {
	in := domain.SimulationInput{MonthlyContribution: 500, AnnualReturnRate: 0.07, DurationYears: 10}
	series, yearly := SimulateMonths(in)

	require.Len(t, series.PortfolioValue, 121)
	require.Len(t, series.InvestedTotal, 121)
	require.Len(t, yearly, 10)

	for i, point := range yearly {
		assert.Equal(t, i+1, point.Year)
	}
	assert.Equal(t, 0.0, series.PortfolioValue[0])
	assert.Equal(t, 0.0, series.InvestedTotal[0])
}

func TestSimulateMonths_MatchesClosedForm(t *testing.T) {
	in := domain.SimulationInput{MonthlyContribution: 500, AnnualReturnRate: 0.07, DurationYears: 10}
	series, yearly := SimulateMonths(in)

	final := series.PortfolioValue[120]
	assert.InDelta(t, closedFormFutureValue(500, 0.07, 120), final, 1e-6)
	assert.InDelta(t, 87047.2344, final, 1e-3)
	assert.InDelta(t, 60000.0, series.InvestedTotal[120], 1e-9)

	assert.Equal(t, 6232.0, yearly[0].PortfolioValue)
	assert.Equal(t, 36005.0, yearly[4].PortfolioValue)
	assert.Equal(t, 87047.0, yearly[9].PortfolioValue)
	assert.Equal(t, 60000.0, yearly[9].InvestedTotal)
}

func TestSimulateMonths_InitialCapitalSeeded(t *testing.T) {
	in := domain.SimulationInput{MonthlyContribution: 100, InitialCapital: 2500, AnnualReturnRate: 0.05, DurationYears: 3}
	series, _ := SimulateMonths(in)

	assert.Equal(t, 2500.0, series.PortfolioValue[0])
	assert.Equal(t, 2500.0, series.InvestedTotal[0])
	assert.InDelta(t, 2500.0+100*36, series.InvestedTotal[36], 1e-9)
}

func TestSimulateMonths_ZeroRate(t *testing.T) {
	in := domain.SimulationInput{MonthlyContribution: 1000, InitialCapital: 5000, AnnualReturnRate: 0, DurationYears: 4}
	series, yearly := SimulateMonths(in)

	for m := range series.PortfolioValue {
		assert.Equal(t, series.InvestedTotal[m], series.PortfolioValue[m], "month %d", m)
	}
	assert.Equal(t, 53000.0, series.PortfolioValue[48])
	assert.Equal(t, 53000.0, yearly[3].PortfolioValue)
}

func TestSimulateMonths_NegativeRateShrinksCapital(t *testing.T) {
	in := domain.SimulationInput{InitialCapital: 300000, AnnualReturnRate: -0.10, DurationYears: 5}
	series, _ := SimulateMonths(in)

	for m := 1; m < len(series.PortfolioValue); m++ {
		assert.Less(t, series.PortfolioValue[m], series.PortfolioValue[m-1])
	}
	assert.InDelta(t, 181578.396, series.PortfolioValue[60], 1e-3)
}

func TestSimulateMonths_DoesNotMutateInput(t *testing.T) {
	in := domain.SimulationInput{MonthlyContribution: 250, InitialCapital: 10, AnnualReturnRate: 0.06, DurationYears: 2, AnnualInflationRate: 0.02}
	before := in
	SimulateMonths(in)
	assert.Equal(t, before, in)
}

func TestSimulateMonths_InvestedTotalNeverDecreases(t *testing.T) {
	tests := []struct {
		name string
		in   domain.SimulationInput
	}{
		{"contributions only", domain.SimulationInput{MonthlyContribution: 500, AnnualReturnRate: 0.07, DurationYears: 10}},
		{"contributions with lump sum", domain.SimulationInput{MonthlyContribution: 500, InitialCapital: 20000, AnnualReturnRate: 0.07, DurationYears: 10}},
		{"negative rate", domain.SimulationInput{MonthlyContribution: 200, AnnualReturnRate: -0.15, DurationYears: 8}},
		{"negative rate with lump sum", domain.SimulationInput{MonthlyContribution: 200, InitialCapital: 50000, AnnualReturnRate: -0.15, DurationYears: 8}},
		{"zero contribution", domain.SimulationInput{AnnualReturnRate: 0.05, DurationYears: 6}},
		{"zero contribution with lump sum", domain.SimulationInput{InitialCapital: 10000, AnnualReturnRate: -0.03, DurationYears: 6}},
		{"everything zero", domain.SimulationInput{DurationYears: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, yearly := SimulateMonths(tt.in)
			require.Len(t, series.InvestedTotal, tt.in.Months()+1)
			assert.Equal(t, tt.in.InitialCapital, series.InvestedTotal[0])

			for m := 1; m < len(series.InvestedTotal); m++ {
				assert.GreaterOrEqual(t, series.InvestedTotal[m], series.InvestedTotal[m-1], "month %d", m)
			}
			for i := 1; i < len(yearly); i++ {
				assert.GreaterOrEqual(t, yearly[i].InvestedTotal, yearly[i-1].InvestedTotal, "year %d", yearly[i].Year)
			}
			want := tt.in.InitialCapital + tt.in.MonthlyContribution*float64(tt.in.Months())
			assert.InDelta(t, want, series.InvestedTotal[tt.in.Months()], 1e-9)
		})
	}
}
