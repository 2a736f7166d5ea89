package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration bytes.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// SaveToFile writes a configuration back out as YAML.
func (ip *InputParser) SaveToFile(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateDefaults(&config.Defaults); err != nil {
		return fmt.Errorf("defaults validation failed: %w", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.validateScenario(scenario, config.Defaults); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

func (ip *InputParser) validateDefaults(defaults *domain.Defaults) error {
	if defaults.MilestoneStep != nil && !defaults.MilestoneStep.IsPositive() {
		return domain.NewInputError("milestone_step", "must be positive")
	}
	if defaults.InflationRate != nil {
		if err := validateFraction("inflation_rate", *defaults.InflationRate); err != nil {
			return err
		}
	}
	if defaults.Locale != "" {
		if _, err := language.Parse(defaults.Locale); err != nil {
			return fmt.Errorf("locale %q: %w", defaults.Locale, err)
		}
	}
	return nil
}

func (ip *InputParser) validateScenario(scenario *domain.Scenario, defaults domain.Defaults) error {
	if strings.TrimSpace(scenario.Name) == "" {
		return fmt.Errorf("name is required")
	}

	if scenario.DurationYears != nil && *scenario.DurationYears > domain.MaxDurationYears {
		return domain.NewInputError("duration_years", fmt.Sprintf("cannot exceed %d years", domain.MaxDurationYears))
	}
	if scenario.MilestoneStep != nil && !scenario.MilestoneStep.IsPositive() {
		return domain.NewInputError("milestone_step", "must be positive")
	}
	if scenario.InflationRate != nil {
		if err := validateFraction("inflation_rate", *scenario.InflationRate); err != nil {
			return err
		}
	}

	// ToInput covers required fields, signs and finiteness.
	if _, err := scenario.ToInput(defaults); err != nil {
		return err
	}
	return nil
}

func validateFraction(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1)) {
		return domain.NewInputError(field, "must be between 0 and 1")
	}
	return nil
}
