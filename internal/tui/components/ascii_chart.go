package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/dcasim/internal/tui/tuistyles"
)

const yAxisWidth = 10

// DataSeries represents a single line in a chart. Points are evenly spaced
// across the x range.
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ChartMarker flags a position on the x axis. Pos is a fraction of the
// x range in [0, 1].
type ChartMarker struct {
	Pos   float64
	Label string
}

// ASCIIChart displays a line chart with an optional marker row under the x axis.
type ASCIIChart struct {
	Title       string
	Series      []*DataSeries
	Markers     []ChartMarker
	Labels      []string // x-axis labels, first and last are shown
	Width       int
	Height      int
	ShowLegend  bool
	XAxisLabel  string
	MarkerColor lipgloss.Color

	// YFormat renders y-axis values; defaults to a compact K/M form.
	YFormat func(float64) string
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:       title,
		Width:       60,
		Height:      12,
		ShowLegend:  true,
		MarkerColor: tuistyles.ColorChartMilestone,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithMarkers sets the x-axis markers
func (c *ASCIIChart) WithMarkers(markers []ChartMarker) *ASCIIChart {
	c.Markers = markers
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// PlotWidth is the number of columns available for data.
func (c *ASCIIChart) PlotWidth() int {
	return max(2, c.Width-yAxisWidth-3)
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasData() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		content.WriteString("\n")
	}

	minVal, maxVal := c.getGlobalMinMax()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if len(c.Markers) > 0 {
		content.WriteString(c.renderMarkerRow())
		content.WriteString("\n")
	}
	if len(c.Labels) > 0 {
		content.WriteString(c.renderXAxisLabels())
		content.WriteString("\n")
	}
	if c.XAxisLabel != "" {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(c.XAxisLabel))
		content.WriteString("\n")
	}
	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString(c.renderLegend())
	}

	return strings.TrimRight(content.String(), "\n")
}

func (c *ASCIIChart) hasData() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// getGlobalMinMax finds the value range across all series. Non-negative
// data keeps zero as the floor.
func (c *ASCIIChart) getGlobalMinMax() (float64, float64) {
	globalMin := math.Inf(1)
	globalMax := math.Inf(-1)
	for _, series := range c.Series {
		for _, point := range series.Points {
			globalMin = math.Min(globalMin, point)
			globalMax = math.Max(globalMax, point)
		}
	}

	padding := (globalMax - globalMin) * 0.1
	if globalMin >= 0 {
		globalMin = 0
	} else {
		globalMin -= padding
	}
	globalMax += padding
	if globalMax == globalMin {
		globalMax = globalMin + 1
	}
	return globalMin, globalMax
}

func (c *ASCIIChart) column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
}

func (c *ASCIIChart) row(v, minVal, maxVal float64) int {
	return c.Height - 1 - int(math.Round((v-minVal)/(maxVal-minVal)*float64(c.Height-1)))
}

// renderGrid renders the chart grid with data points
func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	width := c.PlotWidth()

	grid := make([][]rune, c.Height)
	owner := make([][]int, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
		owner[i] = make([]int, width)
	}

	for seriesIdx, series := range c.Series {
		char := c.getSeriesChar(seriesIdx)
		n := len(series.Points)
		for i, point := range series.Points {
			x, y := c.column(i, n, width), c.row(point, minVal, maxVal)
			if i > 0 {
				px, py := c.column(i-1, n, width), c.row(series.Points[i-1], minVal, maxVal)
				c.drawLine(grid, owner, px, py, x, y, char, seriesIdx)
			} else {
				c.plot(grid, owner, x, y, char, seriesIdx)
			}
		}
	}

	yFormat := c.YFormat
	if yFormat == nil {
		yFormat = formatChartValue
	}
	yAxisStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)

	var output strings.Builder
	for i, row := range grid {
		label := ""
		if i == 0 || i == c.Height-1 || i == c.Height/2 {
			label = yFormat(maxVal - float64(i)/float64(c.Height-1)*(maxVal-minVal))
		}
		output.WriteString(yAxisStyle.Render(label))
		output.WriteString(" │ ")
		for x, r := range row {
			if r == ' ' {
				output.WriteRune(r)
				continue
			}
			output.WriteString(lipgloss.NewStyle().Foreground(c.Series[owner[i][x]].Color).Render(string(r)))
		}
		output.WriteString("\n")
	}

	output.WriteString(strings.Repeat(" ", yAxisWidth))
	output.WriteString(" └")
	output.WriteString(strings.Repeat("─", width+1))
	output.WriteString("\n")

	return output.String()
}

// MarkerColumns returns the plot column of every marker.
func (c *ASCIIChart) MarkerColumns() []int {
	width := c.PlotWidth()
	cols := make([]int, len(c.Markers))
	for i, m := range c.Markers {
		pos := math.Max(0, math.Min(1, m.Pos))
		cols[i] = int(math.Round(pos * float64(width-1)))
	}
	return cols
}

// renderMarkerRow draws a ▲ under the x axis at each marker.
func (c *ASCIIChart) renderMarkerRow() string {
	row := []rune(strings.Repeat(" ", c.PlotWidth()))
	for _, col := range c.MarkerColumns() {
		row[col] = '▲'
	}
	style := lipgloss.NewStyle().Foreground(c.MarkerColor)
	return strings.Repeat(" ", yAxisWidth+3) + style.Render(string(row))
}

// getSeriesChar returns the character to use for a series
func (c *ASCIIChart) getSeriesChar(index int) rune {
	chars := []rune{'●', '·', '▲', '♦'}
	return chars[index%len(chars)]
}

func (c *ASCIIChart) plot(grid [][]rune, owner [][]int, x, y int, char rune, series int) {
	if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
		grid[y][x] = char
		owner[y][x] = series
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
// Earlier series win where lines overlap.
func (c *ASCIIChart) drawLine(grid [][]rune, owner [][]int, x0, y0, x1, y1 int, char rune, series int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	x, y := x0, y0
	for {
		c.plot(grid, owner, x, y, char, series)
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels shows the first and last label at the plot edges.
func (c *ASCIIChart) renderXAxisLabels() string {
	first, last := c.Labels[0], c.Labels[len(c.Labels)-1]
	gap := max(1, c.PlotWidth()-lipgloss.Width(first)-lipgloss.Width(last))
	style := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+3) + style.Render(first+strings.Repeat(" ", gap)+last)
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, series := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(series.Color).Render(string(c.getSeriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, series.Name))
	}
	if len(c.Markers) > 0 {
		items = append(items, lipgloss.NewStyle().Foreground(c.MarkerColor).Render("▲")+" milestone")
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

// formatChartValue formats a value for display on Y-axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("%.1fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("%.0fK", value/1000)
	}
	return fmt.Sprintf("%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
