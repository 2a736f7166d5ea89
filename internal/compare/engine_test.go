package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/dcasim/internal/calculation"
	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func testConfig() *domain.Configuration {
	ten, twenty := 10, 20
	return &domain.Configuration{
		Defaults: domain.Defaults{Currency: "$"},
		Scenarios: []domain.Scenario{
			{
				Name:                "Base",
				MonthlyContribution: dec("500"),
				InitialCapital:      dec("10000"),
				AnnualReturnRate:    dec("0.08"),
				DurationYears:       &twenty,
			},
			{
				Name:                "Short",
				MonthlyContribution: dec("500"),
				AnnualReturnRate:    dec("0.07"),
				DurationYears:       &ten,
			},
		},
	}
}

func TestCompareEngine_Compare_Templates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewProjectionEngine())

	compSet, err := engine.Compare(context.Background(), testConfig(), CompareOptions{
		BaseScenarioName: "Base",
		Templates:        []string{"contrib_double", "rate_minus_1pt"},
		ConfigPath:       "scenarios.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "Base", compSet.BaseScenarioName)
	assert.Equal(t, "scenarios.yaml", compSet.ConfigPath)
	require.NotNil(t, compSet.BaseResult)
	assert.True(t, compSet.BaseResult.TotalInvested.Equal(decimal.NewFromInt(130000)))
	assert.Equal(t, 3, compSet.BaseResult.MilestonesReached)
	require.NotNil(t, compSet.BaseResult.FirstMilestoneYears)

	require.Len(t, compSet.AlternativeResults, 2)

	doubled := compSet.AlternativeResults[0]
	assert.Equal(t, "Base_contrib_double", doubled.ScenarioName)
	assert.Equal(t, "Double the monthly contribution", doubled.Description)
	assert.True(t, doubled.FinalValueDiffFromBase.IsPositive())
	assert.True(t, doubled.InvestedDiffFromBase.Equal(decimal.NewFromInt(120000)))
	require.NotNil(t, doubled.FirstMilestoneDiffYears)
	assert.True(t, doubled.FirstMilestoneDiffYears.IsNegative(), "more contributions reach the first milestone sooner")

	lower := compSet.AlternativeResults[1]
	assert.True(t, lower.FinalValueDiffFromBase.IsNegative())
	require.NotNil(t, lower.CAGRDiffPoints)
	assert.True(t, lower.CAGRDiffPoints.IsNegative())

	assert.NotEmpty(t, compSet.Recommendations)
	assert.Contains(t, compSet.Recommendations[0], "Base_contrib_double")
}

func TestCompareEngine_Compare_InlineTransform(t *testing.T) {
	engine := NewCompareEngine(nil)

	compSet, err := engine.Compare(context.Background(), testConfig(), CompareOptions{
		BaseScenarioName: "Base",
		Templates:        []string{"extend_duration:years=5"},
	})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)

	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "Base_extend_duration", alt.ScenarioName)
	assert.Equal(t, 25, alt.DurationYears)
	assert.Equal(t, "Keep investing 5 more years", alt.Description)
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	engine := NewCompareEngine(nil)
	ctx := context.Background()

	_, err := engine.Compare(ctx, testConfig(), CompareOptions{BaseScenarioName: "Missing"})
	assert.ErrorContains(t, err, "base scenario Missing not found")

	_, err = engine.Compare(ctx, testConfig(), CompareOptions{BaseScenarioName: "Base", Templates: []string{"nope"}})
	assert.ErrorContains(t, err, "template nope not found")

	_, err = engine.Compare(ctx, testConfig(), CompareOptions{BaseScenarioName: "Base", Templates: []string{"set_duration:years=500"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	engine := NewCompareEngine(nil)

	compSet, err := engine.CompareScenarios(context.Background(), testConfig(), "Base", []string{"Short"})
	require.NoError(t, err)
	require.Len(t, compSet.AlternativeResults, 1)

	short := compSet.AlternativeResults[0]
	assert.Equal(t, "Short", short.ScenarioName)
	assert.Equal(t, 0, short.MilestonesReached)
	assert.Nil(t, short.FirstMilestoneYears)
	assert.Nil(t, short.FirstMilestoneDiffYears, "no delta when the alternative never reaches a milestone")
	assert.True(t, short.FinalValueDiffFromBase.IsNegative())

	_, err = engine.CompareScenarios(context.Background(), testConfig(), "Base", []string{"Ghost"})
	assert.ErrorContains(t, err, "alternative scenario Ghost not found")
}

func TestComparisonSet_ToProjectionReport(t *testing.T) {
	compSet, err := NewCompareEngine(nil).CompareScenarios(context.Background(), testConfig(), "Base", []string{"Short"})
	require.NoError(t, err)

	report := compSet.ToProjectionReport()
	assert.Equal(t, "$", report.Currency)
	require.Len(t, report.Scenarios, 2)
	assert.Equal(t, "Base", report.Scenarios[0].Name)
	assert.Equal(t, "Short", report.Scenarios[1].Name)
	assert.NotNil(t, report.Scenarios[1].Projection)
}
