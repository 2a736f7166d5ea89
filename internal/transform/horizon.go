package transform

import (
	"fmt"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// SetDuration replaces the investment horizon.
type SetDuration struct {
	Years int
}

func (sd *SetDuration) Name() string {
	return "set_duration"
}

func (sd *SetDuration) Description() string {
	return fmt.Sprintf("Invest for %d years", sd.Years)
}

func (sd *SetDuration) Validate(base *domain.Scenario) error {
	if err := requireBase(sd.Name(), base); err != nil {
		return err
	}
	return checkDuration(sd.Name(), sd.Years)
}

func (sd *SetDuration) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	years := sd.Years
	modified.DurationYears = &years
	return modified, nil
}

// ExtendDuration lengthens (or, with negative Years, shortens) the horizon.
type ExtendDuration struct {
	Years int
}

func (ed *ExtendDuration) Name() string {
	return "extend_duration"
}

func (ed *ExtendDuration) Description() string {
	if ed.Years < 0 {
		return fmt.Sprintf("Stop investing %d years earlier", -ed.Years)
	}
	return fmt.Sprintf("Keep investing %d more years", ed.Years)
}

func (ed *ExtendDuration) Validate(base *domain.Scenario) error {
	if err := requireBase(ed.Name(), base); err != nil {
		return err
	}
	if ed.Years == 0 {
		return NewTransformError(ed.Name(), "validate", "years cannot be zero", domain.ErrInvalidInput)
	}
	if base.DurationYears == nil {
		return NewTransformError(ed.Name(), "validate", "base scenario has no duration", domain.ErrInvalidInput)
	}
	return checkDuration(ed.Name(), *base.DurationYears+ed.Years)
}

func (ed *ExtendDuration) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	years := *modified.DurationYears + ed.Years
	modified.DurationYears = &years
	return modified, nil
}

func checkDuration(name string, years int) error {
	if years < 1 || years > domain.MaxDurationYears {
		return NewTransformError(name, "validate", fmt.Sprintf("duration must be between 1 and %d years, got %d", domain.MaxDurationYears, years), domain.ErrInvalidInput)
	}
	return nil
}
