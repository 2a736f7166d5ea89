package domain

import (
	"github.com/shopspring/decimal"
)

// Configuration represents a complete scenario file.
type Configuration struct {
	Defaults  Defaults   `yaml:"defaults" json:"defaults"`
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// Defaults apply to every scenario that does not override them.
type Defaults struct {
	MilestoneStep *decimal.Decimal `yaml:"milestone_step" json:"milestoneStep,omitempty"`
	InflationRate *decimal.Decimal `yaml:"inflation_rate" json:"inflationRate,omitempty"`
	Currency      string           `yaml:"currency" json:"currency,omitempty"` // display symbol, e.g. "€"
	Locale        string           `yaml:"locale" json:"locale,omitempty"`     // BCP 47 tag, e.g. "fr"
}

// Scenario is a named set of projection inputs as written in a config file.
// Pointer fields distinguish an omitted value from an explicit zero.
type Scenario struct {
	Name                string           `yaml:"name" json:"name"`
	Description         string           `yaml:"description" json:"description,omitempty"`
	MonthlyContribution *decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution,omitempty"`
	InitialCapital      *decimal.Decimal `yaml:"initial_capital" json:"initialCapital,omitempty"`
	AnnualReturnRate    *decimal.Decimal `yaml:"annual_return_rate" json:"annualReturnRate,omitempty"`
	DurationYears       *int             `yaml:"duration_years" json:"durationYears,omitempty"`
	InflationRate       *decimal.Decimal `yaml:"inflation_rate" json:"inflationRate,omitempty"`
	MilestoneStep       *decimal.Decimal `yaml:"milestone_step" json:"milestoneStep,omitempty"`
}

// FindScenario returns the scenario with the given name.
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}

// ToInput converts the scenario into an engine input.
// Only initial capital and inflation may be omitted; both default to zero
// (inflation falls back to the configuration default first).
func (s *Scenario) ToInput(defaults Defaults) (SimulationInput, error) {
	if s.MonthlyContribution == nil {
		return SimulationInput{}, NewInputError("monthly_contribution", "is required")
	}
	if s.AnnualReturnRate == nil {
		return SimulationInput{}, NewInputError("annual_return_rate", "is required")
	}
	if s.DurationYears == nil {
		return SimulationInput{}, NewInputError("duration_years", "is required")
	}

	in := SimulationInput{
		MonthlyContribution: s.MonthlyContribution.InexactFloat64(),
		AnnualReturnRate:    s.AnnualReturnRate.InexactFloat64(),
		DurationYears:       *s.DurationYears,
	}
	if s.InitialCapital != nil {
		in.InitialCapital = s.InitialCapital.InexactFloat64()
	}
	switch {
	case s.InflationRate != nil:
		in.AnnualInflationRate = s.InflationRate.InexactFloat64()
	case defaults.InflationRate != nil:
		in.AnnualInflationRate = defaults.InflationRate.InexactFloat64()
	}

	if err := in.Validate(); err != nil {
		return SimulationInput{}, err
	}
	return in, nil
}

// Step returns the milestone spacing for the scenario.
func (s *Scenario) Step(defaults Defaults) float64 {
	switch {
	case s.MilestoneStep != nil:
		return s.MilestoneStep.InexactFloat64()
	case defaults.MilestoneStep != nil:
		return defaults.MilestoneStep.InexactFloat64()
	}
	return DefaultMilestoneStep
}

// DeepCopy creates a copy that shares no pointers with the original.
func (s *Scenario) DeepCopy() *Scenario {
	if s == nil {
		return nil
	}
	out := &Scenario{
		Name:                s.Name,
		Description:         s.Description,
		MonthlyContribution: copyDecimal(s.MonthlyContribution),
		InitialCapital:      copyDecimal(s.InitialCapital),
		AnnualReturnRate:    copyDecimal(s.AnnualReturnRate),
		InflationRate:       copyDecimal(s.InflationRate),
		MilestoneStep:       copyDecimal(s.MilestoneStep),
	}
	if s.DurationYears != nil {
		years := *s.DurationYears
		out.DurationYears = &years
	}
	return out
}

// ScenarioFromInput builds a config scenario carrying every field of in.
func ScenarioFromInput(name string, in SimulationInput) Scenario {
	years := in.DurationYears
	return Scenario{
		Name:                name,
		MonthlyContribution: decimalPtr(decimal.NewFromFloat(in.MonthlyContribution)),
		InitialCapital:      decimalPtr(decimal.NewFromFloat(in.InitialCapital)),
		AnnualReturnRate:    decimalPtr(decimal.NewFromFloat(in.AnnualReturnRate)),
		DurationYears:       &years,
		InflationRate:       decimalPtr(decimal.NewFromFloat(in.AnnualInflationRate)),
	}
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
