package calculation

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// ProjectionEngine runs the projection pipeline: recurrence, milestone
// detection, intervals and summary. It holds no state between calls.
type ProjectionEngine struct {
	Logger        Logger
	MilestoneStep float64
}

// NewProjectionEngine creates an engine using the default milestone step
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		Logger:        NopLogger{},
		MilestoneStep: domain.DefaultMilestoneStep,
	}
}

// SetLogger sets the logger for the projection engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

func (pe *ProjectionEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// Project runs a projection with the engine's milestone step.
func (pe *ProjectionEngine) Project(input domain.SimulationInput) (*domain.Projection, error) {
	step := pe.MilestoneStep
	if step == 0 {
		step = domain.DefaultMilestoneStep
	}
	return pe.ProjectWithStep(input, step)
}

// ProjectWithStep runs a projection with an explicit milestone step.
func (pe *ProjectionEngine) ProjectWithStep(input domain.SimulationInput, step float64) (*domain.Projection, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateMilestoneStep(step); err != nil {
		return nil, err
	}

	log := pe.logger()
	log.Debugf("projecting %d months: contribution=%.2f initial=%.2f rate=%.4f inflation=%.4f",
		input.Months(), input.MonthlyContribution, input.InitialCapital, input.AnnualReturnRate, input.AnnualInflationRate)

	series, yearly := SimulateMonths(input)
	if !series.Finite() {
		return nil, domain.NewInputError("annualReturnRate", "projection overflows")
	}
	if maxValue := series.MaxValue(); maxValue > 0 && math.Ceil(maxValue/step) > domain.MaxMilestones {
		return nil, domain.NewInputError("milestoneStep",
			fmt.Sprintf("too small: a peak of %.0f would need more than %d milestones", maxValue, domain.MaxMilestones))
	}

	milestones := FindMilestones(series, step)
	intervals := MilestoneIntervals(milestones)
	summary := Summarize(series, input)

	log.Debugf("final nominal=%.2f adjusted=%.2f milestones=%d", summary.FinalValueNominal, summary.FinalValueAdjusted, len(milestones))
	if !summary.HasCAGR() {
		log.Debugf("CAGR undefined (invested=%.2f adjusted=%.2f)", summary.TotalInvested, summary.FinalValueAdjusted)
	}

	return &domain.Projection{
		Input:         input,
		MilestoneStep: step,
		YearlySeries:  yearly,
		Milestones:    milestones,
		Intervals:     intervals,
		Summary:       summary,
	}, nil
}

// RunScenario projects a single configured scenario.
func (pe *ProjectionEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.ScenarioProjection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, err := scenario.ToInput(config.Defaults)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	projection, err := pe.ProjectWithStep(input, scenario.Step(config.Defaults))
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	return &domain.ScenarioProjection{
		Name:        scenario.Name,
		Description: scenario.Description,
		Projection:  projection,
	}, nil
}

// RunScenarioAuto projects the scenario at the given index.
func (pe *ProjectionEngine) RunScenarioAuto(ctx context.Context, config *domain.Configuration, index int) (*domain.ScenarioProjection, error) {
	if index < 0 || index >= len(config.Scenarios) {
		return nil, fmt.Errorf("scenario index %d out of range", index)
	}
	return pe.RunScenario(ctx, config, &config.Scenarios[index])
}

// RunScenarios projects every scenario in the configuration, in order.
func (pe *ProjectionEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ProjectionReport, error) {
	report := &domain.ProjectionReport{
		Currency:  config.Defaults.Currency,
		Locale:    config.Defaults.Locale,
		Scenarios: make([]domain.ScenarioProjection, 0, len(config.Scenarios)),
	}

	for i := range config.Scenarios {
		result, err := pe.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		report.Scenarios = append(report.Scenarios, *result)
	}

	pe.logger().Infof("projected %d scenario(s)", len(report.Scenarios))
	return report, nil
}
