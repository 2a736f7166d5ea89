package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (ScenarioTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_contribution", createAdjustContribution)
	registry.Register("set_contribution", createSetContribution)
	registry.Register("set_initial_capital", createSetInitialCapital)
	registry.Register("add_initial_capital", createAddInitialCapital)
	registry.Register("set_return_rate", createSetReturnRate)
	registry.Register("shift_return_rate", createShiftReturnRate)
	registry.Register("set_inflation", createSetInflation)
	registry.Register("set_duration", createSetDuration)
	registry.Register("extend_duration", createExtendDuration)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (ScenarioTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in sorted order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "shift_return_rate:delta=-0.01"
func (r *TransformRegistry) ParseTransformSpec(spec string) (ScenarioTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

func intParam(transform string, params map[string]string, key string) (int, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return value, nil
}

// Factory functions for each transform

func createAdjustContribution(params map[string]string) (ScenarioTransform, error) {
	percent, err := decimalParam("adjust_contribution", params, "percent")
	if err != nil {
		return nil, err
	}
	return &AdjustContribution{Percent: percent}, nil
}

func createSetContribution(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam("set_contribution", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetContribution{Amount: amount}, nil
}

func createSetInitialCapital(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam("set_initial_capital", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetInitialCapital{Amount: amount}, nil
}

func createAddInitialCapital(params map[string]string) (ScenarioTransform, error) {
	amount, err := decimalParam("add_initial_capital", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddInitialCapital{Amount: amount}, nil
}

func createSetReturnRate(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_return_rate", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetReturnRate{Rate: rate}, nil
}

func createShiftReturnRate(params map[string]string) (ScenarioTransform, error) {
	delta, err := decimalParam("shift_return_rate", params, "delta")
	if err != nil {
		return nil, err
	}
	return &ShiftReturnRate{Delta: delta}, nil
}

func createSetInflation(params map[string]string) (ScenarioTransform, error) {
	rate, err := decimalParam("set_inflation", params, "rate")
	if err != nil {
		return nil, err
	}
	return &SetInflation{Rate: rate}, nil
}

func createSetDuration(params map[string]string) (ScenarioTransform, error) {
	years, err := intParam("set_duration", params, "years")
	if err != nil {
		return nil, err
	}
	return &SetDuration{Years: years}, nil
}

func createExtendDuration(params map[string]string) (ScenarioTransform, error) {
	years, err := intParam("extend_duration", params, "years")
	if err != nil {
		return nil, err
	}
	return &ExtendDuration{Years: years}, nil
}
