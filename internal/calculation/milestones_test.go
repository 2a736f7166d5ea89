package calculation

import (
	"math"
	"testing"
	"time"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMilestones_GrowthScenario(t *testing.T) {
	in := domain.SimulationInput{MonthlyContribution: 500, InitialCapital: 10000, AnnualReturnRate: 0.08, DurationYears: 20}
	series, _ := SimulateMonths(in)

	milestones := FindMilestones(series, domain.DefaultMilestoneStep)
	require.Len(t, milestones, 3)

	expected := []struct {
		threshold float64
		month     int
	}{
		{100000, 109},
		{200000, 177},
		{300000, 223},
	}
	for i, want := range expected {
		assert.Equal(t, want.threshold, milestones[i].ThresholdAmount)
		assert.Equal(t, want.month, milestones[i].MonthIndex)
		assert.InDelta(t, float64(want.month)/12, milestones[i].Years, 1e-12)
	}

	// The highest candidate threshold sits above the final value and is skipped.
	assert.Less(t, series.MaxValue(), 400000.0)
}

func TestFindMilestones_FirstCrossingIsMinimal(t *testing.T) {
	in := domain.SimulationInput{MonthlyContribution: 500, InitialCapital: 10000, AnnualReturnRate: 0.08, DurationYears: 20}
	series, _ := SimulateMonths(in)

	for _, ms := range FindMilestones(series, 50000) {
		assert.GreaterOrEqual(t, series.PortfolioValue[ms.MonthIndex], ms.ThresholdAmount)
		for m := 0; m < ms.MonthIndex; m++ {
			assert.Less(t, series.PortfolioValue[m], ms.ThresholdAmount)
		}
	}
}

func TestFindMilestones_BelowFirstThreshold(t *testing.T) {
	in := domain.SimulationInput{MonthlyContribution: 500, AnnualReturnRate: 0.07, DurationYears: 10}
	series, _ := SimulateMonths(in)

	milestones := FindMilestones(series, domain.DefaultMilestoneStep)
	assert.NotNil(t, milestones)
	assert.Empty(t, milestones)
	assert.Empty(t, MilestoneIntervals(milestones))
}

func TestFindMilestones_NonPositiveMaximum(t *testing.T) {
	series := domain.MonthlySeries{PortfolioValue: []float64{0, 0, 0}, InvestedTotal: []float64{0, 0, 0}}
	assert.Empty(t, FindMilestones(series, 100))
	assert.Empty(t, FindMilestones(domain.MonthlySeries{}, 100))
}

func TestFindMilestones_InfiniteMaximum(t *testing.T) {
	series := domain.MonthlySeries{
		PortfolioValue: []float64{0, 1e300, math.Inf(1)},
		InvestedTotal:  []float64{0, 1, 2},
	}

	done := make(chan []domain.Milestone, 1)
	go func() { done <- FindMilestones(series, domain.DefaultMilestoneStep) }()

	select {
	case milestones := <-done:
		assert.NotNil(t, milestones)
		assert.Empty(t, milestones)
	case <-time.After(5 * time.Second):
		t.Fatal("FindMilestones did not return for an infinite series")
	}
}

func TestFindMilestones_InvalidStep(t *testing.T) {
	series := domain.MonthlySeries{PortfolioValue: []float64{0, 500}, InvestedTotal: []float64{0, 500}}
	assert.Empty(t, FindMilestones(series, 0))
	assert.Empty(t, FindMilestones(series, -100))
}

func TestFindMilestones_NonMonotonicSeries(t *testing.T) {
	series := domain.MonthlySeries{
		PortfolioValue: []float64{0, 150000, 50000, 250000, 120000},
		InvestedTotal:  []float64{0, 1, 2, 3, 4},
	}

	milestones := FindMilestones(series, 100000)
	require.Len(t, milestones, 2)
	assert.Equal(t, 100000.0, milestones[0].ThresholdAmount)
	assert.Equal(t, 1, milestones[0].MonthIndex)
	assert.Equal(t, 200000.0, milestones[1].ThresholdAmount)
	assert.Equal(t, 3, milestones[1].MonthIndex)
}

func TestFindMilestones_ReachedAtMonthZero(t *testing.T) {
	in := domain.SimulationInput{InitialCapital: 300000, AnnualReturnRate: -0.10, DurationYears: 5}
	series, _ := SimulateMonths(in)

	milestones := FindMilestones(series, domain.DefaultMilestoneStep)
	require.Len(t, milestones, 3)
	for _, ms := range milestones {
		assert.Equal(t, 0, ms.MonthIndex)
		assert.Equal(t, 0.0, ms.Years)
	}

	intervals := MilestoneIntervals(milestones)
	require.Len(t, intervals, 2)
	for _, iv := range intervals {
		assert.Equal(t, 0.0, iv.Years)
	}
}

func TestFindMilestones_ExactThresholdCounts(t *testing.T) {
	series := domain.MonthlySeries{PortfolioValue: []float64{0, 100, 200}, InvestedTotal: []float64{0, 100, 200}}

	milestones := FindMilestones(series, 100)
	require.Len(t, milestones, 2)
	assert.Equal(t, 1, milestones[0].MonthIndex)
	assert.Equal(t, 2, milestones[1].MonthIndex)
}

func TestMilestoneIntervals(t *testing.T) {
	milestones := []domain.Milestone{
		{ThresholdAmount: 100000, MonthIndex: 109, Years: 109.0 / 12},
		{ThresholdAmount: 200000, MonthIndex: 177, Years: 177.0 / 12},
		{ThresholdAmount: 300000, MonthIndex: 223, Years: 223.0 / 12},
	}

	intervals := MilestoneIntervals(milestones)
	require.Len(t, intervals, 2)

	assert.Equal(t, 100000.0, intervals[0].FromAmount)
	assert.Equal(t, 200000.0, intervals[0].ToAmount)
	assert.InDelta(t, 68.0/12, intervals[0].Years, 1e-12)
	assert.Equal(t, 200000.0, intervals[1].FromAmount)
	assert.Equal(t, 300000.0, intervals[1].ToAmount)
	assert.InDelta(t, 46.0/12, intervals[1].Years, 1e-12)

	for i, iv := range intervals {
		assert.Equal(t, milestones[i+1].Years-milestones[i].Years, iv.Years)
	}

	assert.Empty(t, MilestoneIntervals(milestones[:1]))
	assert.Empty(t, MilestoneIntervals(nil))
}
