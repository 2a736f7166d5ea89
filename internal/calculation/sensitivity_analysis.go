package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	engine *ProjectionEngine

	// Progress, when set, is called after each swept value is projected.
	Progress func(done, total int)
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *ProjectionEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewProjectionEngine()
	}
	return &SensitivityAnalyzer{engine: engine}
}

// AnalyzeSingleParameter sweeps one input across the parameter's range and
// projects the base input at every value.
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	base domain.SimulationInput,
	baseScenarioName string,
	step float64,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	if parameter.MaxValue.LessThan(parameter.MinValue) {
		return nil, fmt.Errorf("parameter %s: max value %s is below min value %s",
			parameter.Name, parameter.MaxValue.String(), parameter.MinValue.String())
	}

	values := GenerateParameterValues(parameter)
	points := make([]domain.SensitivityPoint, 0, len(values))

	for i, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		input, err := ApplyParameter(base, parameter.Name, value)
		if err != nil {
			return nil, err
		}

		projection, err := sa.engine.ProjectWithStep(input, step)
		if err != nil {
			return nil, fmt.Errorf("failed to project %s=%s: %w", parameter.Name, value.String(), err)
		}

		point := domain.SensitivityPoint{
			Value:          value,
			Input:          input,
			Summary:        projection.Summary,
			MilestoneCount: len(projection.Milestones),
		}
		if first, ok := projection.FirstMilestone(); ok {
			years := first.Years
			point.FirstMilestoneYears = &years
		}
		points = append(points, point)

		if sa.Progress != nil {
			sa.Progress(i+1, len(values))
		}
	}

	return &domain.ParameterSensitivityAnalysis{
		BaseScenarioName: baseScenarioName,
		Parameter:        parameter,
		Points:           points,
		Summary:          summarizeSweep(points),
	}, nil
}

// GenerateParameterValues returns Steps evenly spaced values from MinValue to MaxValue inclusive.
func GenerateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.MinValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// ApplyParameter returns a copy of in with the named input set to value.
func ApplyParameter(in domain.SimulationInput, name string, value decimal.Decimal) (domain.SimulationInput, error) {
	out := in
	switch name {
	case domain.ParamMonthlyContribution:
		out.MonthlyContribution = value.InexactFloat64()
	case domain.ParamInitialCapital:
		out.InitialCapital = value.InexactFloat64()
	case domain.ParamAnnualReturnRate:
		out.AnnualReturnRate = value.InexactFloat64()
	case domain.ParamInflationRate:
		out.AnnualInflationRate = value.InexactFloat64()
	case domain.ParamDurationYears:
		if !value.Equal(value.Truncate(0)) {
			return in, domain.NewInputError("durationYears", fmt.Sprintf("must be a whole number of years, got %s", value.String()))
		}
		out.DurationYears = int(value.IntPart())
	default:
		return in, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}

	if err := out.Validate(); err != nil {
		return in, err
	}
	return out, nil
}

func summarizeSweep(points []domain.SensitivityPoint) domain.SensitivitySummary {
	if len(points) == 0 {
		return domain.SensitivitySummary{}
	}

	minValue := points[0].Summary.FinalValueAdjusted
	maxValue := minValue
	for _, p := range points[1:] {
		v := p.Summary.FinalValueAdjusted
		if v < minValue {
			minValue = v
		}
		if v > maxValue {
			maxValue = v
		}
	}

	summary := domain.SensitivitySummary{
		MinFinalAdjusted: minValue,
		MaxFinalAdjusted: maxValue,
		Spread:           maxValue - minValue,
	}
	if minValue > 0 {
		summary.SpreadPercent = summary.Spread / minValue * 100
	}
	return summary
}
