package domain

import (
	"fmt"
	"math"
)

// DefaultMilestoneStep is the wealth threshold spacing used when none is configured.
const DefaultMilestoneStep = 100000.0

// MaxDurationYears bounds the projection horizon.
const MaxDurationYears = 100

// MaxMilestones bounds the number of thresholds a single projection searches.
const MaxMilestones = 10000

// SimulationInput holds the parameters of a single projection.
// Rates are fractions (0.07 for 7%). The value is never mutated by the engine.
type SimulationInput struct {
	MonthlyContribution float64 `json:"monthlyContribution" yaml:"monthly_contribution"`
	InitialCapital      float64 `json:"initialCapital" yaml:"initial_capital"`
	AnnualReturnRate    float64 `json:"annualReturnRate" yaml:"annual_return_rate"`
	DurationYears       int     `json:"durationYears" yaml:"duration_years"`
	AnnualInflationRate float64 `json:"annualInflationRate" yaml:"annual_inflation_rate"`
}

// NewSimulationInput builds a validated input.
func NewSimulationInput(monthlyContribution, initialCapital, annualReturnRate float64, durationYears int, annualInflationRate float64) (SimulationInput, error) {
	in := SimulationInput{
		MonthlyContribution: monthlyContribution,
		InitialCapital:      initialCapital,
		AnnualReturnRate:    annualReturnRate,
		DurationYears:       durationYears,
		AnnualInflationRate: annualInflationRate,
	}
	if err := in.Validate(); err != nil {
		return SimulationInput{}, err
	}
	return in, nil
}

// Months returns the number of simulated months.
func (in SimulationInput) Months() int {
	return in.DurationYears * 12
}

// MonthlyRate returns the nominal monthly return rate.
func (in SimulationInput) MonthlyRate() float64 {
	return in.AnnualReturnRate / 12
}

// Validate rejects inputs the engine cannot project.
func (in SimulationInput) Validate() error {
	if in.DurationYears <= 0 {
		return NewInputError("durationYears", "must be a positive whole number of years")
	}
	if in.DurationYears > MaxDurationYears {
		return NewInputError("durationYears", fmt.Sprintf("cannot exceed %d years", MaxDurationYears))
	}
	if !isFinite(in.MonthlyContribution) {
		return NewInputError("monthlyContribution", "must be a finite number")
	}
	if in.MonthlyContribution < 0 {
		return NewInputError("monthlyContribution", "cannot be negative")
	}
	if !isFinite(in.InitialCapital) {
		return NewInputError("initialCapital", "must be a finite number")
	}
	if in.InitialCapital < 0 {
		return NewInputError("initialCapital", "cannot be negative")
	}
	if !isFinite(in.AnnualReturnRate) {
		return NewInputError("annualReturnRate", "must be a finite number")
	}
	if !isFinite(in.AnnualInflationRate) {
		return NewInputError("annualInflationRate", "must be a finite number")
	}
	if in.AnnualInflationRate < 0 || in.AnnualInflationRate > 1 {
		return NewInputError("annualInflationRate", "must be between 0 and 1")
	}
	return nil
}

// ValidateMilestoneStep checks a threshold spacing.
func ValidateMilestoneStep(step float64) error {
	if !isFinite(step) || step <= 0 {
		return NewInputError("milestoneStep", "must be a positive finite amount")
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
