package calculation

import (
	"math"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// FindMilestones returns, for each multiple of step up to the first multiple
// at or above the series maximum, the first month the portfolio reached it.
// Thresholds that are never reached are left out, so the highest candidate
// is usually missing from the result.
//
// Every threshold is searched from month 0 on its own, which keeps the result
// correct for series that dip (negative rates).
func FindMilestones(series domain.MonthlySeries, step float64) []domain.Milestone {
	milestones := []domain.Milestone{}
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return milestones
	}

	maxValue := series.MaxValue()
	if maxValue <= 0 || math.IsInf(maxValue, 0) || math.IsNaN(maxValue) {
		return milestones
	}

	ceiling := math.Ceil(maxValue / step)
	for k := 1; float64(k) <= ceiling; k++ {
		threshold := float64(k) * step
		month, ok := firstMonthAtOrAbove(series.PortfolioValue, threshold)
		if !ok {
			continue
		}
		milestones = append(milestones, domain.Milestone{
			ThresholdAmount: threshold,
			MonthIndex:      month,
			Years:           float64(month) / 12,
		})
	}

	return milestones
}

func firstMonthAtOrAbove(values []float64, threshold float64) (int, bool) {
	for m, v := range values {
		if v >= threshold {
			return m, true
		}
	}
	return 0, false
}

// MilestoneIntervals returns the years elapsed between consecutive milestones.
func MilestoneIntervals(milestones []domain.Milestone) []domain.MilestoneInterval {
	intervals := []domain.MilestoneInterval{}
	for i := 1; i < len(milestones); i++ {
		prev, curr := milestones[i-1], milestones[i]
		intervals = append(intervals, domain.MilestoneInterval{
			FromAmount: prev.ThresholdAmount,
			ToAmount:   curr.ThresholdAmount,
			Years:      curr.Years - prev.Years,
		})
	}
	return intervals
}
