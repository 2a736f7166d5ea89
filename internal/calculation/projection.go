package calculation

import (
	"math"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// SimulateMonths runs the contribute-then-grow recurrence over every month of
// the horizon. Each month the contribution is added first and the whole
// balance then grows by one month of the nominal annual rate.
//
// The yearly series is sampled at every 12th month and rounded to whole units.
// The monthly series is kept at full precision for milestone detection.
func SimulateMonths(input domain.SimulationInput) (domain.MonthlySeries, []domain.YearlyPoint) {
	months := input.Months()
	if months < 0 {
		months = 0
	}
	growth := 1 + input.MonthlyRate()

	series := domain.MonthlySeries{
		PortfolioValue: make([]float64, months+1),
		InvestedTotal:  make([]float64, months+1),
	}
	series.PortfolioValue[0] = input.InitialCapital
	series.InvestedTotal[0] = input.InitialCapital

	yearly := make([]domain.YearlyPoint, 0, months/12)
	for m := 1; m <= months; m++ {
		series.InvestedTotal[m] = series.InvestedTotal[m-1] + input.MonthlyContribution
		series.PortfolioValue[m] = (series.PortfolioValue[m-1] + input.MonthlyContribution) * growth

		if m%12 == 0 {
			yearly = append(yearly, domain.YearlyPoint{
				Year:           m / 12,
				PortfolioValue: math.Round(series.PortfolioValue[m]),
				InvestedTotal:  math.Round(series.InvestedTotal[m]),
			})
		}
	}

	return series, yearly
}
