package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/dcasim/internal/calculation"
	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	Engine            *calculation.ProjectionEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(engine *calculation.ProjectionEngine) *CompareEngine {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	return &CompareEngine{
		Engine:            engine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Name of the base scenario to compare against
	Templates        []string // Template names or inline transform specs ("name:key=value")
	ConfigPath       string   // Shown in reports
}

// Compare projects the base scenario and one alternative per template.
// Entries containing ':' are parsed as inline transform specs.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	config *domain.Configuration,
	options CompareOptions,
) (*ComparisonSet, error) {

	baseScenario, ok := config.FindScenario(options.BaseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found in configuration", options.BaseScenarioName)
	}

	baseProjection, err := ce.Engine.RunScenario(ctx, config, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseProjection)

	alternatives := []ComparisonResult{}
	for _, entry := range options.Templates {
		modified, description, err := ce.deriveScenario(baseScenario, entry)
		if err != nil {
			return nil, err
		}

		altProjection, err := ce.Engine.RunScenario(ctx, config, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", entry, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(altProjection)
		altResult.Description = description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   options.BaseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		ConfigPath:         options.ConfigPath,
		Currency:           config.Defaults.Currency,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) deriveScenario(base *domain.Scenario, entry string) (*domain.Scenario, string, error) {
	if strings.Contains(entry, ":") {
		tr, err := ce.TransformRegistry.ParseTransformSpec(entry)
		if err != nil {
			return nil, "", fmt.Errorf("invalid transform %s: %w", entry, err)
		}
		modified, err := transform.ApplyTransforms(base, []transform.ScenarioTransform{tr})
		if err != nil {
			return nil, "", fmt.Errorf("failed to apply transform %s: %w", entry, err)
		}
		modified.Name = base.Name + "_" + tr.Name()
		return modified, tr.Description(), nil
	}

	template, ok := ce.TemplateRegistry.Get(entry)
	if !ok {
		return nil, "", fmt.Errorf("template %s not found", entry)
	}

	modified, err := transform.ApplyTemplate(base, template)
	if err != nil {
		return nil, "", fmt.Errorf("failed to apply template %s: %w", entry, err)
	}
	modified.Name = base.Name + "_" + template.Name
	return modified, template.Description, nil
}

// CompareScenarios compares explicit scenarios (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	config *domain.Configuration,
	baseScenarioName string,
	alternativeScenarioNames []string,
) (*ComparisonSet, error) {

	baseScenario, ok := config.FindScenario(baseScenarioName)
	if !ok {
		return nil, fmt.Errorf("base scenario %s not found", baseScenarioName)
	}
	baseProjection, err := ce.Engine.RunScenario(ctx, config, baseScenario)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseProjection)

	alternatives := []ComparisonResult{}
	for _, altName := range alternativeScenarioNames {
		altScenario, ok := config.FindScenario(altName)
		if !ok {
			return nil, fmt.Errorf("alternative scenario %s not found", altName)
		}

		altProjection, err := ce.Engine.RunScenario(ctx, config, altScenario)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", altName, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(altProjection)
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
		Currency:           config.Defaults.Currency,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
