package compare

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Total Invested",
		"Final Value (Nominal)",
		"Final Value (Adjusted)",
		"Total Gains",
		"CAGR %",
		"Milestones Reached",
		"First Milestone (Years)",
		"Final Value Diff from Base",
		"Final Value % Change",
		"Invested Diff from Base",
		"CAGR Diff (pts)",
		"First Milestone Diff (Years)",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.TotalInvested.StringFixed(2),
		result.FinalValueNominal.StringFixed(2),
		result.FinalValueAdjusted.StringFixed(2),
		result.TotalGains.StringFixed(2),
		optional(result.CAGRPercent),
		fmt.Sprintf("%d", result.MilestonesReached),
		optional(result.FirstMilestoneYears),
		result.FinalValueDiffFromBase.StringFixed(2),
		result.FinalValuePctFromBase.StringFixed(2),
		result.InvestedDiffFromBase.StringFixed(2),
		optional(result.CAGRDiffPoints),
		optional(result.FirstMilestoneDiffYears),
	}
}

// optional renders an undefined value as an empty cell
func optional(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}
