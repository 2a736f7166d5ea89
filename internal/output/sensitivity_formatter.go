package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct {
	Money Money
}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if analysis == nil || len(analysis.Points) == 0 {
		return "", fmt.Errorf("no results in analysis")
	}
	param := analysis.Parameter
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
	fmt.Fprintf(&buf, "=================================================================\n")
	if analysis.BaseScenarioName != "" {
		fmt.Fprintf(&buf, "Base Scenario: %s\n", analysis.BaseScenarioName)
	}
	fmt.Fprintf(&buf, "Range: %s to %s (%d steps)\n",
		scf.paramValue(param, param.MinValue), scf.paramValue(param, param.MaxValue), len(analysis.Points))
	if param.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", param.Description)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-14s %16s %16s %16s %10s %11s\n",
		"Value", "Final Nominal", "Final Real", "Gains", "CAGR", "Milestones")
	fmt.Fprintln(&buf, strings.Repeat("-", 88))
	for _, pt := range analysis.Points {
		fmt.Fprintf(&buf, "%-14s %16s %16s %16s %10s %11d\n",
			scf.paramValue(param, pt.Value),
			scf.Money.Amount(pt.Summary.FinalValueNominal),
			scf.Money.Amount(pt.Summary.FinalValueAdjusted),
			scf.Money.Amount(pt.Summary.TotalGains),
			FormatCAGR(pt.Summary.CAGRPercent),
			pt.MilestoneCount)
	}
	fmt.Fprintln(&buf)

	s := analysis.Summary
	fmt.Fprintln(&buf, "SENSITIVITY:")
	fmt.Fprintf(&buf, "  Final value (real) ranges from %s to %s\n", scf.Money.Amount(s.MinFinalAdjusted), scf.Money.Amount(s.MaxFinalAdjusted))
	fmt.Fprintf(&buf, "  Spread: %s (%s)\n", scf.Money.Amount(s.Spread), FormatPercentage(decimal.NewFromFloat(s.SpreadPercent)))

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) paramValue(param domain.SensitivityParameter, v decimal.Decimal) string {
	switch param.Unit {
	case "percent":
		return FormatPercentage(v.Mul(decimal.NewFromInt(100)))
	case "currency":
		return scf.Money.Amount(v.InexactFloat64())
	case "years":
		return v.String() + " yrs"
	}
	return v.String()
}

// SensitivityCSVFormatter formats sensitivity analysis as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if analysis == nil {
		return "", fmt.Errorf("nil analysis")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"Parameter", "Value", "TotalInvested", "FinalValueNominal", "FinalValueAdjusted", "TotalGains", "CAGRPercent", "Milestones", "FirstMilestoneYears"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, pt := range analysis.Points {
		row := []string{
			analysis.Parameter.Name,
			pt.Value.String(),
			decimal.NewFromFloat(pt.Summary.TotalInvested).StringFixed(2),
			decimal.NewFromFloat(pt.Summary.FinalValueNominal).StringFixed(2),
			decimal.NewFromFloat(pt.Summary.FinalValueAdjusted).StringFixed(2),
			decimal.NewFromFloat(pt.Summary.TotalGains).StringFixed(2),
			optionalFixed(pt.Summary.CAGRPercent, 4),
			strconv.Itoa(pt.MilestoneCount),
			optionalFixed(pt.FirstMilestoneYears, 2),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

func optionalFixed(v *float64, places int32) string {
	if v == nil {
		return ""
	}
	return decimal.NewFromFloat(*v).StringFixed(places)
}

// SensitivityJSONFormatter formats sensitivity analysis as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string, money Money) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{Money: money}
	}
}
