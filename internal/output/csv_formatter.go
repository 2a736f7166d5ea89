package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes one row per scenario and completed year.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "Year", "PortfolioValue", "InvestedTotal"}); err != nil {
		return nil, err
	}
	for _, sc := range scenariosOf(report) {
		if sc.Projection == nil {
			continue
		}
		for _, y := range sc.Projection.YearlySeries {
			row := []string{
				sc.Name,
				strconv.Itoa(y.Year),
				decimal.NewFromFloat(y.PortfolioValue).StringFixed(0),
				decimal.NewFromFloat(y.InvestedTotal).StringFixed(0),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// MilestoneCSVFormatter writes one row per reached milestone.
type MilestoneCSVFormatter struct{}

func (c MilestoneCSVFormatter) Name() string { return "milestones-csv" }

func (c MilestoneCSVFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Scenario", "Threshold", "MonthIndex", "Years"}); err != nil {
		return nil, err
	}
	for _, sc := range scenariosOf(report) {
		if sc.Projection == nil {
			continue
		}
		for _, ms := range sc.Projection.Milestones {
			row := []string{
				sc.Name,
				decimal.NewFromFloat(ms.ThresholdAmount).StringFixed(0),
				strconv.Itoa(ms.MonthIndex),
				decimal.NewFromFloat(ms.Years).StringFixed(4),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func scenariosOf(report *domain.ProjectionReport) []domain.ScenarioProjection {
	if report == nil {
		return nil
	}
	return report.Scenarios
}
