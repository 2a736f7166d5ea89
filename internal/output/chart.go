package output

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// Chart geometry in SVG user units.
const (
	chartWidth   = 760.0
	chartHeight  = 360.0
	chartLeft    = 70.0
	chartRight   = 740.0
	chartTop     = 40.0
	chartBottom  = 320.0
	chartYTicks  = 4
	labelCharW   = 7.0
	labelPadding = 12.0
)

// Chart is the precomputed SVG layout for one projection.
type Chart struct {
	Width, Height  float64
	Left, Right    float64
	Top, Bottom    float64
	AxisLabelX     float64 // right edge of y-axis labels
	AxisLabelY     float64 // baseline of x-axis labels
	PortfolioPath  string
	InvestedPath   string
	XTicks, YTicks []ChartTick
	Milestones     []ChartMarker
	Intervals      []ChartMarker
}

// ChartTick is an axis label at a position along its axis.
type ChartTick struct {
	Pos   float64
	Label string
}

// ChartMarker is a labelled point of the milestone overlay. RectX and RectW
// size the label background around X.
type ChartMarker struct {
	X, Y  float64
	RectX float64
	RectW float64
	Label string
}

// Empty reports whether there is nothing to draw.
func (c Chart) Empty() bool { return c.PortfolioPath == "" }

// BuildChart lays out the yearly series of p on a linear year axis starting
// at year 0 (the initial capital). Milestones become dashed vertical lines
// labelled with their amount at the top; each interval is labelled halfway
// between its two milestones near the bottom.
func BuildChart(p *domain.Projection, money Money) Chart {
	c := Chart{
		Width: chartWidth, Height: chartHeight,
		Left: chartLeft, Right: chartRight,
		Top: chartTop, Bottom: chartBottom,
		AxisLabelX: chartLeft - 6, AxisLabelY: chartBottom + 18,
	}
	if p == nil || len(p.YearlySeries) == 0 {
		return c
	}

	years := float64(p.Input.DurationYears)
	if years <= 0 {
		years = float64(len(p.YearlySeries))
	}
	maxY := p.Input.InitialCapital
	for _, y := range p.YearlySeries {
		maxY = max(maxY, y.PortfolioValue, y.InvestedTotal)
	}
	if maxY <= 0 {
		maxY = 1
	}

	xFor := func(yr float64) float64 { return chartLeft + yr/years*(chartRight-chartLeft) }
	yFor := func(v float64) float64 { return chartBottom - v/maxY*(chartBottom-chartTop) }

	var portfolio, invested strings.Builder
	fmt.Fprintf(&portfolio, "M %.1f,%.1f", xFor(0), yFor(p.Input.InitialCapital))
	fmt.Fprintf(&invested, "M %.1f,%.1f", xFor(0), yFor(p.Input.InitialCapital))
	for _, y := range p.YearlySeries {
		x := xFor(float64(y.Year))
		fmt.Fprintf(&portfolio, " L %.1f,%.1f", x, yFor(y.PortfolioValue))
		fmt.Fprintf(&invested, " L %.1f,%.1f", x, yFor(y.InvestedTotal))
	}
	c.PortfolioPath = portfolio.String()
	c.InvestedPath = invested.String()

	for i := 0; i <= chartYTicks; i++ {
		v := maxY * float64(i) / chartYTicks
		c.YTicks = append(c.YTicks, ChartTick{Pos: yFor(v), Label: money.Short(v)})
	}
	every := 1
	if len(p.YearlySeries) > 20 {
		every = (len(p.YearlySeries) + 9) / 10
	}
	for _, y := range p.YearlySeries {
		if y.Year%every == 0 || y.Year == 1 {
			c.XTicks = append(c.XTicks, ChartTick{Pos: xFor(float64(y.Year)), Label: fmt.Sprintf("Year %d", y.Year)})
		}
	}

	for _, ms := range p.Milestones {
		c.Milestones = append(c.Milestones, newMarker(xFor(ms.Years), chartTop-14, money.Short(ms.ThresholdAmount)))
	}
	// Intervals[i] spans Milestones[i] to Milestones[i+1].
	for i, iv := range p.Intervals {
		if i+1 >= len(p.Milestones) {
			break
		}
		mid := (xFor(p.Milestones[i].Years) + xFor(p.Milestones[i+1].Years)) / 2
		c.Intervals = append(c.Intervals, newMarker(mid, chartBottom-16, FormatYears(iv.Years)))
	}
	return c
}

func newMarker(x, y float64, label string) ChartMarker {
	w := float64(utf8.RuneCountInString(label))*labelCharW + labelPadding
	return ChartMarker{X: x, Y: y, RectX: x - w/2, RectW: w, Label: label}
}
