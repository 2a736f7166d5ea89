package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// NoMilestonesMessage is printed when the horizon ends below the first threshold.
const NoMilestonesMessage = "No milestones reached within the selected duration."

// ConsoleFormatter renders a plain-text report for the terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	money := MoneyFor(report)
	var buf bytes.Buffer

	fmt.Fprintln(&buf, "=================================================================================")
	fmt.Fprintln(&buf, "DCA PROJECTION REPORT")
	fmt.Fprintln(&buf, "=================================================================================")

	for i, sc := range report.Scenarios {
		fmt.Fprintln(&buf)
		writeScenario(&buf, money, i+1, sc)
	}
	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, money Money, n int, sc domain.ScenarioProjection) {
	title := fmt.Sprintf("SCENARIO %d: %s", n, sc.Name)
	fmt.Fprintln(buf, title)
	fmt.Fprintln(buf, strings.Repeat("=", len([]rune(title))))
	if sc.Description != "" {
		fmt.Fprintln(buf, sc.Description)
	}
	p := sc.Projection
	if p == nil {
		fmt.Fprintln(buf, "  (no projection)")
		return
	}

	in := p.Input
	fmt.Fprintln(buf, "INPUTS:")
	fmt.Fprintf(buf, "  Monthly Contribution:  %s\n", money.Amount(in.MonthlyContribution))
	fmt.Fprintf(buf, "  Initial Capital:       %s\n", money.Amount(in.InitialCapital))
	fmt.Fprintf(buf, "  Annual Return:         %s\n", FormatRate(in.AnnualReturnRate))
	fmt.Fprintf(buf, "  Duration:              %d years\n", in.DurationYears)
	fmt.Fprintf(buf, "  Inflation:             %s\n", FormatRate(in.AnnualInflationRate))
	fmt.Fprintf(buf, "  Milestone Step:        %s\n", money.Short(p.MilestoneStep))
	fmt.Fprintln(buf)

	s := p.Summary
	fmt.Fprintln(buf, "SUMMARY:")
	fmt.Fprintf(buf, "  Total Invested:        %s\n", money.Amount(s.TotalInvested))
	fmt.Fprintf(buf, "  Final Value:           %s\n", money.Amount(s.FinalValueNominal))
	if in.AnnualInflationRate > 0 {
		fmt.Fprintf(buf, "  Final Value (real):    %s\n", money.Amount(s.FinalValueAdjusted))
	}
	fmt.Fprintf(buf, "  Total Gains:           %s\n", money.Amount(s.TotalGains))
	fmt.Fprintf(buf, "  CAGR:                  %s\n", FormatCAGR(s.CAGRPercent))
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "YEARLY PROJECTION:")
	fmt.Fprintf(buf, "  %-6s %18s %18s\n", "Year", "Portfolio", "Invested")
	fmt.Fprintf(buf, "  %s\n", strings.Repeat("-", 44))
	for _, y := range p.YearlySeries {
		fmt.Fprintf(buf, "  %-6d %18s %18s\n", y.Year, money.Amount(y.PortfolioValue), money.Amount(y.InvestedTotal))
	}
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "MILESTONES:")
	if len(p.Milestones) == 0 {
		fmt.Fprintf(buf, "  %s\n", NoMilestonesMessage)
		return
	}
	for _, ms := range p.Milestones {
		fmt.Fprintf(buf, "  %s\n", money.MilestoneLabel(ms))
	}
	if len(p.Intervals) > 0 {
		fmt.Fprintf(buf, "  Intervals: %s\n", money.IntervalsLine(p.Intervals))
	}
}
