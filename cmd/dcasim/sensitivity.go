package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/dcasim/internal/calculation"
	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/output"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [input-file]",
		Short: "Sweep one input and report how the projection responds",
		Long: `Vary a single input across a range and project the base scenario at every value.

Parameters: monthly_contribution, initial_capital, annual_return_rate,
duration_years, inflation_rate.

Examples:
  dcasim sensitivity scenarios.yaml --parameter annual_return_rate
  dcasim sensitivity scenarios.yaml --parameter inflation_rate --range 0-0.05 --steps 6
  dcasim sensitivity --monthly 500 --rate 0.07 --years 30 --parameter monthly_contribution --range 250-1000 --steps 4
  dcasim sensitivity scenarios.yaml --base-scenario Seeded --parameter duration_years --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSensitivityAnalysis,
	}
	addInputFlags(cmd)
	cmd.Flags().String("parameter", domain.ParamAnnualReturnRate, "Input to sweep")
	cmd.Flags().String("range", "", "Sweep range as min-max (default: the parameter's preset range)")
	cmd.Flags().Int("steps", 0, "Number of values in the sweep (default: the parameter's preset)")
	cmd.Flags().String("base-scenario", "", "Base scenario name (default: first scenario)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().Bool("quiet", false, "Hide the progress bar")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func runSensitivityAnalysis(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfiguration(cmd, args)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	baseName, _ := flags.GetString("base-scenario")
	paramName, _ := flags.GetString("parameter")
	rangeStr, _ := flags.GetString("range")
	steps, _ := flags.GetInt("steps")
	outputFormat, _ := flags.GetString("format")
	quiet, _ := flags.GetBool("quiet")

	scenario := &cfg.Scenarios[0]
	if baseName != "" {
		var ok bool
		if scenario, ok = cfg.FindScenario(baseName); !ok {
			return fmt.Errorf("base scenario %s not found in configuration", baseName)
		}
	}
	base, err := scenario.ToInput(cfg.Defaults)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	param, err := buildParameter(paramName, rangeStr, steps)
	if err != nil {
		return err
	}

	analyzer := calculation.NewSensitivityAnalyzer(newEngine(cmd))
	if !quiet {
		bar := progressbar.NewOptions(max(param.Steps, 1),
			progressbar.OptionSetWriter(cmd.ErrOrStderr()),
			progressbar.OptionSetDescription("sweeping "+param.Name),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		analyzer.Progress = func(done, total int) {
			_ = bar.Set(done)
			if done == total {
				_ = bar.Finish()
			}
		}
	}

	analysis, err := analyzer.AnalyzeSingleParameter(cmd.Context(), base, scenario.Name, scenario.Step(cfg.Defaults), param)
	if err != nil {
		return fmt.Errorf("sensitivity analysis failed: %w", err)
	}

	formatter := output.NewSensitivityFormatter(outputFormat, output.NewMoney(cfg.Defaults.Currency, cfg.Defaults.Locale))
	text, err := formatter.FormatSensitivityAnalysis(analysis)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}

// buildParameter starts from the preset for name and overrides its range
// and step count when given.
func buildParameter(name, rangeStr string, steps int) (domain.SensitivityParameter, error) {
	presets := domain.CommonSensitivityParameters()
	param, ok := presets[name]
	if !ok {
		names := make([]string, 0, len(presets))
		for n := range presets {
			names = append(names, n)
		}
		sort.Strings(names)
		return domain.SensitivityParameter{}, fmt.Errorf("unknown parameter %q (valid: %s)", name, strings.Join(names, ", "))
	}

	if rangeStr != "" {
		minValue, maxValue, err := parseRange(rangeStr)
		if err != nil {
			return domain.SensitivityParameter{}, err
		}
		param.MinValue = minValue
		param.MaxValue = maxValue
	}
	if steps < 0 {
		return domain.SensitivityParameter{}, fmt.Errorf("steps cannot be negative, got %d", steps)
	}
	if steps > 0 {
		param.Steps = steps
	}
	return param, nil
}

// parseRange reads "min-max". A leading minus belongs to min, so
// "-0.02-0.05" is a valid return-rate range.
func parseRange(rangeStr string) (decimal.Decimal, decimal.Decimal, error) {
	sep := strings.Index(rangeStr[1:], "-")
	if len(rangeStr) < 3 || sep < 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid range format: %s (expected min-max)", rangeStr)
	}
	sep++

	minValue, err := decimal.NewFromString(strings.TrimSpace(rangeStr[:sep]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid min value: %w", err)
	}
	maxValue, err := decimal.NewFromString(strings.TrimSpace(rangeStr[sep+1:]))
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid max value: %w", err)
	}
	if maxValue.LessThan(minValue) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("invalid range %s: max is below min", rangeStr)
	}
	return minValue, maxValue, nil
}
