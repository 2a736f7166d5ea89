package calculation

import (
	"math"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// Summarize derives the end-of-horizon figures from a simulated series.
// Inflation is applied once to the final nominal value as a terminal discount.
func Summarize(series domain.MonthlySeries, input domain.SimulationInput) domain.SimulationSummary {
	if len(series.PortfolioValue) == 0 || len(series.InvestedTotal) == 0 {
		return domain.SimulationSummary{}
	}

	last := series.Months()
	totalInvested := series.InvestedTotal[last]
	nominal := series.PortfolioValue[last]

	adjusted := nominal
	if input.AnnualInflationRate > 0 {
		adjusted = nominal * math.Pow(1-input.AnnualInflationRate, float64(input.DurationYears))
	}

	return domain.SimulationSummary{
		TotalInvested:      totalInvested,
		FinalValueNominal:  nominal,
		FinalValueAdjusted: adjusted,
		TotalGains:         adjusted - totalInvested,
		CAGRPercent:        CAGRPercent(adjusted, totalInvested, input.DurationYears),
	}
}

// CAGRPercent returns the compound annual growth rate, in percent, that turns
// invested into final over the given number of years. It returns nil when the
// rate is undefined: nothing invested, a non-positive final value, or a
// non-finite result.
func CAGRPercent(final, invested float64, years int) *float64 {
	if invested <= 0 || final <= 0 || years <= 0 {
		return nil
	}
	cagr := (math.Pow(final/invested, 1/float64(years)) - 1) * 100
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return nil
	}
	return &cagr
}
