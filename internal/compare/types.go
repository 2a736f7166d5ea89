package compare

import (
	"fmt"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string             `json:"scenarioName"`
	Description  string             `json:"description"`
	Projection   *domain.Projection `json:"-"`

	// Key Metrics
	TotalInvested       decimal.Decimal  `json:"totalInvested"`
	FinalValueNominal   decimal.Decimal  `json:"finalValueNominal"`
	FinalValueAdjusted  decimal.Decimal  `json:"finalValueAdjusted"`
	TotalGains          decimal.Decimal  `json:"totalGains"`
	CAGRPercent         *decimal.Decimal `json:"cagrPercent"`
	MilestonesReached   int              `json:"milestonesReached"`
	FirstMilestoneYears *decimal.Decimal `json:"firstMilestoneYears"`

	// Comparison to Base
	FinalValueDiffFromBase  decimal.Decimal  `json:"finalValueDiffFromBase"`
	FinalValuePctFromBase   decimal.Decimal  `json:"finalValuePctFromBase"`
	InvestedDiffFromBase    decimal.Decimal  `json:"investedDiffFromBase"`
	GainsDiffFromBase       decimal.Decimal  `json:"gainsDiffFromBase"`
	CAGRDiffPoints          *decimal.Decimal `json:"cagrDiffPoints"`
	FirstMilestoneDiffYears *decimal.Decimal `json:"firstMilestoneDiffYears"`

	// Scenario Specifics (extracted from the input for display)
	MonthlyContribution string `json:"monthlyContribution,omitempty"`
	InitialCapital      string `json:"initialCapital,omitempty"`
	AnnualReturnRate    string `json:"annualReturnRate,omitempty"`
	DurationYears       int    `json:"durationYears,omitempty"`
	InflationRate       string `json:"inflationRate,omitempty"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
	Currency           string             `json:"currency,omitempty"`
}

// ToProjectionReport converts a ComparisonSet into a report the output formatters can render
func (cs *ComparisonSet) ToProjectionReport() *domain.ProjectionReport {
	report := &domain.ProjectionReport{
		Currency:  cs.Currency,
		Scenarios: make([]domain.ScenarioProjection, 0, len(cs.AlternativeResults)+1),
	}

	if cs.BaseResult != nil && cs.BaseResult.Projection != nil {
		report.Scenarios = append(report.Scenarios, domain.ScenarioProjection{
			Name:        cs.BaseResult.ScenarioName,
			Description: cs.BaseResult.Description,
			Projection:  cs.BaseResult.Projection,
		})
	}
	for _, result := range cs.AlternativeResults {
		if result.Projection != nil {
			report.Scenarios = append(report.Scenarios, domain.ScenarioProjection{
				Name:        result.ScenarioName,
				Description: result.Description,
				Projection:  result.Projection,
			})
		}
	}

	return report
}

// MetricsCalculator extracts key metrics from scenario projections
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projected scenario
func (mc *MetricsCalculator) CalculateMetrics(sp *domain.ScenarioProjection) ComparisonResult {
	p := sp.Projection
	summary := p.Summary

	result := ComparisonResult{
		ScenarioName:       sp.Name,
		Description:        sp.Description,
		Projection:         p,
		TotalInvested:      money(summary.TotalInvested),
		FinalValueNominal:  money(summary.FinalValueNominal),
		FinalValueAdjusted: money(summary.FinalValueAdjusted),
		TotalGains:         money(summary.TotalGains),
		MilestonesReached:  len(p.Milestones),

		MonthlyContribution: decimal.NewFromFloat(p.Input.MonthlyContribution).StringFixed(2),
		InitialCapital:      decimal.NewFromFloat(p.Input.InitialCapital).StringFixed(2),
		AnnualReturnRate:    percent(p.Input.AnnualReturnRate),
		DurationYears:       p.Input.DurationYears,
		InflationRate:       percent(p.Input.AnnualInflationRate),
	}

	if summary.CAGRPercent != nil {
		cagr := decimal.NewFromFloat(*summary.CAGRPercent).Round(4)
		result.CAGRPercent = &cagr
	}
	if first, ok := p.FirstMilestone(); ok {
		years := decimal.NewFromFloat(first.Years).Round(4)
		result.FirstMilestoneYears = &years
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.FinalValueDiffFromBase = scenario.FinalValueAdjusted.Sub(base.FinalValueAdjusted)

	if !base.FinalValueAdjusted.IsZero() {
		scenario.FinalValuePctFromBase = scenario.FinalValueDiffFromBase.
			Div(base.FinalValueAdjusted).
			Mul(decimal.NewFromInt(100))
	}

	scenario.InvestedDiffFromBase = scenario.TotalInvested.Sub(base.TotalInvested)
	scenario.GainsDiffFromBase = scenario.TotalGains.Sub(base.TotalGains)

	if scenario.CAGRPercent != nil && base.CAGRPercent != nil {
		diff := scenario.CAGRPercent.Sub(*base.CAGRPercent)
		scenario.CAGRDiffPoints = &diff
	}
	if scenario.FirstMilestoneYears != nil && base.FirstMilestoneYears != nil {
		diff := scenario.FirstMilestoneYears.Sub(*base.FirstMilestoneYears)
		scenario.FirstMilestoneDiffYears = &diff
	}

	return scenario
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func percent(rate float64) string {
	return decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult
	symbol := compSet.currencySymbol()

	// Highest inflation-adjusted final value
	best := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalValueAdjusted.GreaterThan(best.FinalValueAdjusted) {
			best = alt
		}
	}
	if best != base {
		diff := best.FinalValueAdjusted.Sub(base.FinalValueAdjusted)
		recommendations = append(recommendations,
			"Highest Final Value: "+best.ScenarioName+" ends with "+symbol+diff.StringFixed(0)+
				" more than the base scenario")
	}

	// Best return on contributions
	bestCAGR := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.CAGRPercent == nil {
			continue
		}
		if bestCAGR.CAGRPercent == nil || alt.CAGRPercent.GreaterThan(*bestCAGR.CAGRPercent) {
			bestCAGR = alt
		}
	}
	if bestCAGR != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Best Growth Rate: %s compounds contributions at %s%% a year",
				bestCAGR.ScenarioName, bestCAGR.CAGRPercent.StringFixed(2)))
	}

	// Earliest first milestone
	fastest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FirstMilestoneYears == nil {
			continue
		}
		if fastest.FirstMilestoneYears == nil || alt.FirstMilestoneYears.LessThan(*fastest.FirstMilestoneYears) {
			fastest = alt
		}
	}
	if fastest != base {
		if base.FirstMilestoneYears != nil {
			sooner := base.FirstMilestoneYears.Sub(*fastest.FirstMilestoneYears)
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest First Milestone: %s gets there %s years sooner",
					fastest.ScenarioName, sooner.StringFixed(2)))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("Fastest First Milestone: %s reaches a milestone the base scenario never does (%s years)",
					fastest.ScenarioName, fastest.FirstMilestoneYears.StringFixed(2)))
		}
	}

	return recommendations
}

func (cs *ComparisonSet) currencySymbol() string {
	if cs.Currency == "" {
		return "$"
	}
	return cs.Currency
}
