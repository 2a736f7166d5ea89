package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/output"
	"github.com/rgehrsitz/dcasim/internal/tui/tuistyles"
)

// SummaryPanel shows the headline numbers of one projection.
type SummaryPanel struct {
	Summary   domain.SimulationSummary
	Inflation float64
	Money     output.Money
	TileWidth int
}

// Tile is one labelled number in the panel. Note is optional; Trend is 0
// for neutral, 1 for up and -1 for down.
type Tile struct {
	Label string
	Value string
	Note  string
	Trend int
}

// NewSummaryPanel builds the panel for p.
func NewSummaryPanel(p *domain.Projection, money output.Money) *SummaryPanel {
	return &SummaryPanel{
		Summary:   p.Summary,
		Inflation: p.Input.AnnualInflationRate,
		Money:     money,
		TileWidth: 22,
	}
}

// Tiles returns total invested, final value, gains and CAGR in that order.
func (s *SummaryPanel) Tiles() []Tile {
	sum := s.Summary

	final := Tile{Label: "Final Value", Value: s.Money.Amount(sum.FinalValueNominal)}
	if s.Inflation > 0 {
		final.Note = "real " + s.Money.Amount(sum.FinalValueAdjusted)
	}

	gains := Tile{Label: "Total Gains", Value: s.Money.Amount(sum.TotalGains)}
	if sum.TotalGains != 0 && sum.TotalInvested > 0 {
		gains.Trend = 1
		if sum.TotalGains < 0 {
			gains.Trend = -1
		}
		gains.Note = output.FormatRate(sum.TotalGains / sum.TotalInvested)
	}

	cagr := Tile{Label: "CAGR", Value: output.FormatCAGR(sum.CAGRPercent)}
	if !sum.HasCAGR() {
		cagr.Note = "undefined"
	}

	return []Tile{
		{Label: "Total Invested", Value: s.Money.Amount(sum.TotalInvested)},
		final,
		gains,
		cagr,
	}
}

func renderNote(t Tile) string {
	switch t.Trend {
	case 1, -1:
		up := t.Trend > 0
		return tuistyles.MetricTrendStyle(up).Render(tuistyles.TrendIndicator(up) + " " + t.Note)
	default:
		return tuistyles.SubtitleStyle.Render(t.Note)
	}
}

// Render lays the tiles out in rows of columns; columns <= 0 puts them all
// on one row.
func (s *SummaryPanel) Render(columns int) string {
	tiles := s.Tiles()
	if columns <= 0 {
		columns = len(tiles)
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(s.TileWidth)

	var rows, row []string
	for i, t := range tiles {
		body := tuistyles.MetricLabelStyle.Render(t.Label) + "\n" + tuistyles.MetricValueStyle.Render(t.Value)
		if t.Note != "" {
			body += "\n" + renderNote(t)
		}
		row = append(row, box.Render(body))
		if len(row) == columns || i == len(tiles)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Line renders the tiles on one unbordered line for short terminals.
func (s *SummaryPanel) Line() string {
	tiles := s.Tiles()
	parts := make([]string, len(tiles))
	for i, t := range tiles {
		parts[i] = tuistyles.MetricLabelStyle.Render(t.Label) + " " + tuistyles.MetricValueStyle.Render(t.Value)
		if t.Trend != 0 {
			parts[i] += " " + renderNote(t)
		}
	}
	return strings.Join(parts, " • ")
}
