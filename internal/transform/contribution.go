package transform

import (
	"fmt"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AdjustContribution scales the monthly contribution by a percentage.
// Percent is expressed in points: 10 raises the contribution by 10%, -25 cuts it by a quarter.
type AdjustContribution struct {
	Percent decimal.Decimal
}

func (ac *AdjustContribution) Name() string {
	return "adjust_contribution"
}

func (ac *AdjustContribution) Description() string {
	if ac.Percent.IsNegative() {
		return fmt.Sprintf("Cut monthly contribution by %s%%", ac.Percent.Neg().StringFixed(1))
	}
	return fmt.Sprintf("Raise monthly contribution by %s%%", ac.Percent.StringFixed(1))
}

func (ac *AdjustContribution) Validate(base *domain.Scenario) error {
	if err := requireBase(ac.Name(), base); err != nil {
		return err
	}
	if ac.Percent.LessThan(hundred.Neg()) {
		return NewTransformError(ac.Name(), "validate", fmt.Sprintf("percent cannot go below -100, got %s", ac.Percent.String()), domain.ErrInvalidInput)
	}
	if base.MonthlyContribution == nil {
		return NewTransformError(ac.Name(), "validate", "base scenario has no monthly contribution", domain.ErrInvalidInput)
	}
	return nil
}

func (ac *AdjustContribution) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	factor := decimal.NewFromInt(1).Add(ac.Percent.Div(hundred))
	scaled := modified.MonthlyContribution.Mul(factor).Round(2)
	modified.MonthlyContribution = &scaled
	return modified, nil
}

// SetContribution replaces the monthly contribution.
type SetContribution struct {
	Amount decimal.Decimal
}

func (sc *SetContribution) Name() string {
	return "set_contribution"
}

func (sc *SetContribution) Description() string {
	return fmt.Sprintf("Set monthly contribution to %s", sc.Amount.StringFixed(2))
}

func (sc *SetContribution) Validate(base *domain.Scenario) error {
	if err := requireBase(sc.Name(), base); err != nil {
		return err
	}
	if sc.Amount.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("amount cannot be negative, got %s", sc.Amount.String()), domain.ErrInvalidInput)
	}
	return nil
}

func (sc *SetContribution) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	amount := sc.Amount
	modified.MonthlyContribution = &amount
	return modified, nil
}

// SetInitialCapital replaces the starting balance.
type SetInitialCapital struct {
	Amount decimal.Decimal
}

func (sic *SetInitialCapital) Name() string {
	return "set_initial_capital"
}

func (sic *SetInitialCapital) Description() string {
	return fmt.Sprintf("Start with %s already invested", sic.Amount.StringFixed(2))
}

func (sic *SetInitialCapital) Validate(base *domain.Scenario) error {
	if err := requireBase(sic.Name(), base); err != nil {
		return err
	}
	if sic.Amount.IsNegative() {
		return NewTransformError(sic.Name(), "validate", fmt.Sprintf("amount cannot be negative, got %s", sic.Amount.String()), domain.ErrInvalidInput)
	}
	return nil
}

func (sic *SetInitialCapital) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	amount := sic.Amount
	modified.InitialCapital = &amount
	return modified, nil
}

// AddInitialCapital adds a lump sum on top of the existing starting balance.
type AddInitialCapital struct {
	Amount decimal.Decimal
}

func (aic *AddInitialCapital) Name() string {
	return "add_initial_capital"
}

func (aic *AddInitialCapital) Description() string {
	return fmt.Sprintf("Add a %s lump sum at the start", aic.Amount.StringFixed(2))
}

func (aic *AddInitialCapital) Validate(base *domain.Scenario) error {
	if err := requireBase(aic.Name(), base); err != nil {
		return err
	}
	if !aic.Amount.IsPositive() {
		return NewTransformError(aic.Name(), "validate", fmt.Sprintf("lump sum must be positive, got %s", aic.Amount.String()), domain.ErrInvalidInput)
	}
	return nil
}

func (aic *AddInitialCapital) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	total := aic.Amount
	if modified.InitialCapital != nil {
		total = modified.InitialCapital.Add(aic.Amount)
	}
	modified.InitialCapital = &total
	return modified, nil
}
