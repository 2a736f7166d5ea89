package transform

import (
	"errors"
	"fmt"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// ScenarioTransform derives a what-if scenario from a base one by rewriting
// one of its overrides: contribution, lump sum, return rate, inflation or
// horizon.
//
// A scenario field left nil inherits the configuration default when the
// scenario is projected. Transforms that scale or shift a value (adjust_*,
// shift_*, extend_*) therefore need the override present on the scenario;
// set_* transforms create it.
type ScenarioTransform interface {
	// Apply returns the rewritten scenario. base is not modified.
	Apply(base *domain.Scenario) (*domain.Scenario, error)

	// Name is the identifier used in templates and on the command line.
	Name() string

	// Description is the one-line label shown next to a comparison column.
	Description() string

	// Validate reports whether Apply would produce a projectable scenario.
	Validate(base *domain.Scenario) error
}

var errNilBase = errors.New("base scenario cannot be nil")

// ApplyTransforms rewrites a copy of base with each transform in turn. Every
// transform sees the scenario the previous one produced, so order matters:
// a 10% raise followed by set_contribution keeps the set amount, while the
// reverse raises it.
//
// Each step is validated before it is applied and the first failure stops the
// chain. The result never aliases base.
func ApplyTransforms(base *domain.Scenario, transforms []ScenarioTransform) (*domain.Scenario, error) {
	if base == nil {
		return nil, errNilBase
	}

	current := base.DeepCopy()
	for i, tr := range transforms {
		if tr == nil {
			return nil, fmt.Errorf("step %d: transform is nil", i+1)
		}
		next, err := applyStep(current, tr)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		current = next
	}
	return current, nil
}

func applyStep(scenario *domain.Scenario, tr ScenarioTransform) (*domain.Scenario, error) {
	if err := tr.Validate(scenario); err != nil {
		return nil, fmt.Errorf("%s rejected %q: %w", tr.Name(), scenario.Name, err)
	}
	next, err := tr.Apply(scenario)
	if err != nil {
		return nil, fmt.Errorf("%s on %q: %w", tr.Name(), scenario.Name, err)
	}
	return next, nil
}

// TransformError is returned when a transform's parameters cannot produce a
// projectable scenario. Err is usually domain.ErrInvalidInput.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	msg := fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransformError) Unwrap() error { return e.Err }

func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{TransformName: transformName, Operation: operation, Reason: reason, Err: err}
}

func requireBase(name string, base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(name, "validate", errNilBase.Error(), nil)
	}
	return nil
}
