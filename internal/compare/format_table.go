package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder
	symbol := compSet.currencySymbol()

	sb.WriteString("DCA SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 90) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	nameWidth := 28
	numWidth := 14

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Invested",
		numWidth, "Final (real)",
		numWidth, "CAGR",
		numWidth, "1st Milestone"))
	sb.WriteString(strings.Repeat("-", 90) + "\n")

	if base := compSet.BaseResult; base != nil {
		sb.WriteString(tf.formatRow(base, symbol, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], symbol, nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 90) + "\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Final Value:      %s%s%s (%s%%)\n",
				tf.deltaSymbol(alt.FinalValueDiffFromBase),
				symbol,
				tf.formatDecimal(alt.FinalValueDiffFromBase.Abs()),
				alt.FinalValuePctFromBase.StringFixed(1)))

			if !alt.InvestedDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Contributions:    %s%s%s\n",
					tf.deltaSymbol(alt.InvestedDiffFromBase),
					symbol,
					tf.formatDecimal(alt.InvestedDiffFromBase.Abs())))
			}

			if alt.CAGRDiffPoints != nil && !alt.CAGRDiffPoints.IsZero() {
				sb.WriteString(fmt.Sprintf("  CAGR:             %s%s pts\n",
					tf.deltaSymbol(*alt.CAGRDiffPoints),
					alt.CAGRDiffPoints.Abs().StringFixed(2)))
			}

			if alt.FirstMilestoneDiffYears != nil && !alt.FirstMilestoneDiffYears.IsZero() {
				sb.WriteString(fmt.Sprintf("  First Milestone:  %s%s years\n",
					tf.deltaSymbol(*alt.FirstMilestoneDiffYears),
					alt.FirstMilestoneDiffYears.Abs().StringFixed(2)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 90) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, symbol string, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	cagr := "—"
	if result.CAGRPercent != nil {
		cagr = result.CAGRPercent.StringFixed(2) + "%"
	}

	milestone := "never"
	if result.FirstMilestoneYears != nil {
		milestone = result.FirstMilestoneYears.StringFixed(2) + " yrs"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, symbol+tf.formatDecimal(result.TotalInvested),
		numWidth, symbol+tf.formatDecimal(result.FinalValueAdjusted),
		numWidth, cagr,
		numWidth, milestone)
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

// deltaSymbol returns a + prefix for positive deltas; negatives carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder
	symbol := compSet.currencySymbol()

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.FinalValueDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+%s%s", symbol, tf.formatDecimal(alt.FinalValueDiffFromBase))
		} else if alt.FinalValueDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-%s%s", symbol, tf.formatDecimal(alt.FinalValueDiffFromBase.Abs()))
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
