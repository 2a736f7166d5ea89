package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulationInput_Validate(t *testing.T) {
	valid := SimulationInput{MonthlyContribution: 500, AnnualReturnRate: 0.07, DurationYears: 10}

	tests := []struct {
		name   string
		mutate func(in *SimulationInput)
		field  string
	}{
		{"zero duration", func(in *SimulationInput) { in.DurationYears = 0 }, "durationYears"},
		{"negative duration", func(in *SimulationInput) { in.DurationYears = -3 }, "durationYears"},
		{"duration past the horizon limit", func(in *SimulationInput) { in.DurationYears = MaxDurationYears + 1 }, "durationYears"},
		{"duration that overflows months", func(in *SimulationInput) { in.DurationYears = 1 << 62 }, "durationYears"},
		{"negative contribution", func(in *SimulationInput) { in.MonthlyContribution = -1 }, "monthlyContribution"},
		{"NaN contribution", func(in *SimulationInput) { in.MonthlyContribution = math.NaN() }, "monthlyContribution"},
		{"negative capital", func(in *SimulationInput) { in.InitialCapital = -100 }, "initialCapital"},
		{"infinite capital", func(in *SimulationInput) { in.InitialCapital = math.Inf(1) }, "initialCapital"},
		{"NaN rate", func(in *SimulationInput) { in.AnnualReturnRate = math.NaN() }, "annualReturnRate"},
		{"negative inflation", func(in *SimulationInput) { in.AnnualInflationRate = -0.01 }, "annualInflationRate"},
		{"inflation above one", func(in *SimulationInput) { in.AnnualInflationRate = 1.5 }, "annualInflationRate"},
	}

	require.NoError(t, valid.Validate())

	longest := valid
	longest.DurationYears = MaxDurationYears
	require.NoError(t, longest.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))

			var inputErr *InputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestSimulationInput_NegativeRateAllowed(t *testing.T) {
	in, err := NewSimulationInput(100, 0, -0.05, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, 60, in.Months())
	assert.InDelta(t, -0.05/12, in.MonthlyRate(), 1e-15)
}

func TestValidateMilestoneStep(t *testing.T) {
	assert.NoError(t, ValidateMilestoneStep(DefaultMilestoneStep))
	assert.ErrorIs(t, ValidateMilestoneStep(0), ErrInvalidInput)
	assert.ErrorIs(t, ValidateMilestoneStep(-5), ErrInvalidInput)
	assert.ErrorIs(t, ValidateMilestoneStep(math.Inf(1)), ErrInvalidInput)
}

func TestScenario_ToInput(t *testing.T) {
	years := 10
	scenario := &Scenario{
		Name:                "Base",
		MonthlyContribution: decimalPtr(decimal.NewFromInt(500)),
		AnnualReturnRate:    decimalPtr(decimal.RequireFromString("0.07")),
		DurationYears:       &years,
	}

	t.Run("omitted optionals default to zero", func(t *testing.T) {
		in, err := scenario.ToInput(Defaults{})
		require.NoError(t, err)
		assert.Equal(t, 500.0, in.MonthlyContribution)
		assert.Equal(t, 0.0, in.InitialCapital)
		assert.Equal(t, 0.07, in.AnnualReturnRate)
		assert.Equal(t, 10, in.DurationYears)
		assert.Equal(t, 0.0, in.AnnualInflationRate)
	})

	t.Run("inflation falls back to defaults", func(t *testing.T) {
		in, err := scenario.ToInput(Defaults{InflationRate: decimalPtr(decimal.RequireFromString("0.02"))})
		require.NoError(t, err)
		assert.Equal(t, 0.02, in.AnnualInflationRate)
	})

	t.Run("missing required fields are rejected", func(t *testing.T) {
		missing := scenario.DeepCopy()
		missing.DurationYears = nil
		_, err := missing.ToInput(Defaults{})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Contains(t, err.Error(), "duration_years")

		missing = scenario.DeepCopy()
		missing.MonthlyContribution = nil
		_, err = missing.ToInput(Defaults{})
		assert.ErrorIs(t, err, ErrInvalidInput)

		missing = scenario.DeepCopy()
		missing.AnnualReturnRate = nil
		_, err = missing.ToInput(Defaults{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestScenario_Step(t *testing.T) {
	s := &Scenario{}
	assert.Equal(t, DefaultMilestoneStep, s.Step(Defaults{}))
	assert.Equal(t, 50000.0, s.Step(Defaults{MilestoneStep: decimalPtr(decimal.NewFromInt(50000))}))

	s.MilestoneStep = decimalPtr(decimal.NewFromInt(25000))
	assert.Equal(t, 25000.0, s.Step(Defaults{MilestoneStep: decimalPtr(decimal.NewFromInt(50000))}))
}

func TestScenario_DeepCopy(t *testing.T) {
	years := 20
	original := &Scenario{
		Name:                "Original",
		MonthlyContribution: decimalPtr(decimal.NewFromInt(300)),
		DurationYears:       &years,
	}

	copied := original.DeepCopy()
	assert.NotSame(t, original, copied)
	assert.NotSame(t, original.MonthlyContribution, copied.MonthlyContribution)
	assert.NotSame(t, original.DurationYears, copied.DurationYears)

	*copied.DurationYears = 30
	assert.Equal(t, 20, *original.DurationYears)
	assert.Nil(t, copied.InitialCapital)

	var nilScenario *Scenario
	assert.Nil(t, nilScenario.DeepCopy())
}

func TestScenarioFromInput_RoundTrip(t *testing.T) {
	in := SimulationInput{MonthlyContribution: 250, InitialCapital: 1000, AnnualReturnRate: 0.05, DurationYears: 15, AnnualInflationRate: 0.02}
	scenario := ScenarioFromInput("rt", in)

	out, err := scenario.ToInput(Defaults{})
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMonthlySeries_Helpers(t *testing.T) {
	var empty MonthlySeries
	assert.Equal(t, 0, empty.Months())
	assert.Equal(t, 0.0, empty.MaxValue())

	s := MonthlySeries{PortfolioValue: []float64{10, 30, 20}, InvestedTotal: []float64{10, 20, 30}}
	assert.Equal(t, 2, s.Months())
	assert.Equal(t, 30.0, s.MaxValue())
	assert.True(t, s.Finite())
	assert.True(t, empty.Finite())

	overflowed := MonthlySeries{PortfolioValue: []float64{1, math.Inf(1)}, InvestedTotal: []float64{1, 2}}
	assert.False(t, overflowed.Finite())
	assert.False(t, MonthlySeries{PortfolioValue: []float64{1}, InvestedTotal: []float64{math.NaN()}}.Finite())
}

func TestConfiguration_FindScenario(t *testing.T) {
	cfg := &Configuration{Scenarios: []Scenario{{Name: "A"}, {Name: "B"}}}

	s, ok := cfg.FindScenario("B")
	require.True(t, ok)
	assert.Equal(t, "B", s.Name)

	_, ok = cfg.FindScenario("C")
	assert.False(t, ok)
}
