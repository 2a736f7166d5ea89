package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/output"
	"github.com/rgehrsitz/dcasim/internal/tui/tuistyles"
)

// MilestoneList shows the thresholds a projection reached and the time
// between consecutive ones.
type MilestoneList struct {
	Milestones []domain.Milestone
	Intervals  []domain.MilestoneInterval
	Money      output.Money
	Width      int
}

// NewMilestoneList creates a list for one projection
func NewMilestoneList(p *domain.Projection, money output.Money) *MilestoneList {
	l := &MilestoneList{Money: money, Width: 60}
	if p != nil {
		l.Milestones = p.Milestones
		l.Intervals = p.Intervals
	}
	return l
}

// WithWidth sets the wrap width
func (l *MilestoneList) WithWidth(width int) *MilestoneList {
	l.Width = width
	return l
}

// Render returns the styled list
func (l *MilestoneList) Render() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Milestones")
	if len(l.Milestones) == 0 {
		return title + "\n" + tuistyles.InfoStyle.Render(output.NoMilestonesMessage)
	}

	labels := make([]string, len(l.Milestones))
	for i, ms := range l.Milestones {
		labels[i] = l.Money.MilestoneLabel(ms)
	}

	marker := lipgloss.NewStyle().Foreground(tuistyles.ColorChartMilestone).Render("▲")
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, label := range labels {
		b.WriteString(marker + " " + tuistyles.MetricValueStyle.Render(label) + "\n")
	}

	if len(l.Intervals) > 0 {
		line := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Width(l.Width).
			Render("Intervals: " + l.Money.IntervalsLine(l.Intervals))
		b.WriteString(line)
	}
	return strings.TrimRight(b.String(), "\n")
}
