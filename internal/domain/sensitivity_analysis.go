package domain

import (
	"github.com/shopspring/decimal"
)

// Sweepable input names.
const (
	ParamMonthlyContribution = "monthly_contribution"
	ParamInitialCapital      = "initial_capital"
	ParamAnnualReturnRate    = "annual_return_rate"
	ParamDurationYears       = "duration_years"
	ParamInflationRate       = "inflation_rate"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "currency", "years"
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the projection outcome at one swept value.
type SensitivityPoint struct {
	Value               decimal.Decimal   `json:"value"`
	Input               SimulationInput   `json:"input"`
	Summary             SimulationSummary `json:"summary"`
	MilestoneCount      int               `json:"milestoneCount"`
	FirstMilestoneYears *float64          `json:"firstMilestoneYears"`
}

// ParameterSensitivityAnalysis represents a complete single-parameter sweep
type ParameterSensitivityAnalysis struct {
	BaseScenarioName string               `json:"baseScenarioName"`
	Parameter        SensitivityParameter `json:"parameter"`
	Points           []SensitivityPoint   `json:"points"`
	Summary          SensitivitySummary   `json:"summary"`
}

// SensitivitySummary describes how far the final value moves across the sweep.
type SensitivitySummary struct {
	MinFinalAdjusted float64 `json:"minFinalAdjusted"`
	MaxFinalAdjusted float64 `json:"maxFinalAdjusted"`
	Spread           float64 `json:"spread"`
	SpreadPercent    float64 `json:"spreadPercent"` // spread relative to the smallest positive final value
}

// Common sensitivity parameters
var (
	ReturnRateParam = SensitivityParameter{
		Name:        ParamAnnualReturnRate,
		MinValue:    decimal.NewFromFloat(0.02),
		MaxValue:    decimal.NewFromFloat(0.10),
		Steps:       5,
		Unit:        "percent",
		Description: "Nominal annual return rate",
	}

	MonthlyContributionParam = SensitivityParameter{
		Name:        ParamMonthlyContribution,
		MinValue:    decimal.NewFromInt(100),
		MaxValue:    decimal.NewFromInt(1000),
		Steps:       10,
		Unit:        "currency",
		Description: "Amount added at the start of each month",
	}

	InitialCapitalParam = SensitivityParameter{
		Name:        ParamInitialCapital,
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromInt(50000),
		Steps:       6,
		Unit:        "currency",
		Description: "Lump sum invested at month zero",
	}

	InflationRateParam = SensitivityParameter{
		Name:        ParamInflationRate,
		MinValue:    decimal.Zero,
		MaxValue:    decimal.NewFromFloat(0.04),
		Steps:       5,
		Unit:        "percent",
		Description: "Annual inflation used for the terminal discount",
	}

	DurationParam = SensitivityParameter{
		Name:        ParamDurationYears,
		MinValue:    decimal.NewFromInt(5),
		MaxValue:    decimal.NewFromInt(40),
		Steps:       8,
		Unit:        "years",
		Description: "Investment horizon",
	}
)

// CommonSensitivityParameters returns the predefined parameter set keyed by name.
func CommonSensitivityParameters() map[string]SensitivityParameter {
	return map[string]SensitivityParameter{
		ReturnRateParam.Name:          ReturnRateParam,
		MonthlyContributionParam.Name: MonthlyContributionParam,
		InitialCapitalParam.Name:      InitialCapitalParam,
		InflationRateParam.Name:       InflationRateParam,
		DurationParam.Name:            DurationParam,
	}
}
