package transform

import (
	"fmt"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	minReturnRate = decimal.NewFromInt(-1)
	maxReturnRate = decimal.NewFromInt(1)
)

// SetReturnRate replaces the nominal annual return rate.
// Rate should be expressed as a decimal (e.g., 0.07 for 7%).
type SetReturnRate struct {
	Rate decimal.Decimal
}

func (srr *SetReturnRate) Name() string {
	return "set_return_rate"
}

func (srr *SetReturnRate) Description() string {
	return fmt.Sprintf("Set annual return to %s%%", srr.Rate.Mul(hundred).StringFixed(1))
}

func (srr *SetReturnRate) Validate(base *domain.Scenario) error {
	if err := requireBase(srr.Name(), base); err != nil {
		return err
	}
	return checkReturnRate(srr.Name(), srr.Rate)
}

func (srr *SetReturnRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	rate := srr.Rate
	modified.AnnualReturnRate = &rate
	return modified, nil
}

// ShiftReturnRate moves the annual return rate by a fixed delta.
// Delta is a decimal fraction: -0.01 lowers a 7% return to 6%.
type ShiftReturnRate struct {
	Delta decimal.Decimal
}

func (shr *ShiftReturnRate) Name() string {
	return "shift_return_rate"
}

func (shr *ShiftReturnRate) Description() string {
	points := shr.Delta.Mul(hundred)
	if points.IsNegative() {
		return fmt.Sprintf("Lower annual return by %s points", points.Neg().StringFixed(1))
	}
	return fmt.Sprintf("Raise annual return by %s points", points.StringFixed(1))
}

func (shr *ShiftReturnRate) Validate(base *domain.Scenario) error {
	if err := requireBase(shr.Name(), base); err != nil {
		return err
	}
	if base.AnnualReturnRate == nil {
		return NewTransformError(shr.Name(), "validate", "base scenario has no annual return rate", domain.ErrInvalidInput)
	}
	return checkReturnRate(shr.Name(), base.AnnualReturnRate.Add(shr.Delta))
}

func (shr *ShiftReturnRate) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	rate := modified.AnnualReturnRate.Add(shr.Delta)
	modified.AnnualReturnRate = &rate
	return modified, nil
}

func checkReturnRate(name string, rate decimal.Decimal) error {
	if rate.LessThan(minReturnRate) || rate.GreaterThan(maxReturnRate) {
		return NewTransformError(name, "validate", fmt.Sprintf("return rate must be between -1 and 1, got %s", rate.String()), domain.ErrInvalidInput)
	}
	return nil
}

// SetInflation replaces the annual inflation rate used for the terminal discount.
type SetInflation struct {
	Rate decimal.Decimal
}

func (si *SetInflation) Name() string {
	return "set_inflation"
}

func (si *SetInflation) Description() string {
	return fmt.Sprintf("Assume %s%% annual inflation", si.Rate.Mul(hundred).StringFixed(1))
}

func (si *SetInflation) Validate(base *domain.Scenario) error {
	if err := requireBase(si.Name(), base); err != nil {
		return err
	}
	if si.Rate.IsNegative() || si.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("inflation must be between 0 and 1, got %s", si.Rate.String()), domain.ErrInvalidInput)
	}
	return nil
}

func (si *SetInflation) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	rate := si.Rate
	modified.InflationRate = &rate
	return modified, nil
}
