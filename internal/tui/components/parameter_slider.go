package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/dcasim/internal/tui/tuistyles"
)

// ParameterSlider displays one adjustable projection input with a visual bar.
type ParameterSlider struct {
	Name        string // input name, e.g. "annual_return_rate"
	Label       string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Percent     bool // value is a fraction shown and typed as a percentage
	Whole       bool // value must be a whole number
	Width       int  // width of the slider bar
	IsFocused   bool
	Description string

	// Display renders a value; defaults to %g.
	Display func(float64) string
}

// NewParameterSlider creates a new parameter slider
func NewParameterSlider(name, label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{
		Name:  name,
		Label: label,
		Min:   min,
		Max:   max,
		Step:  step,
		Width: 30,
	}
	p.Reset(value)
	return p
}

// WithDisplay sets the value renderer
func (p *ParameterSlider) WithDisplay(display func(float64) string) *ParameterSlider {
	p.Display = display
	return p
}

// AsPercent marks the value as a fraction entered in percent
func (p *ParameterSlider) AsPercent() *ParameterSlider {
	p.Percent = true
	return p
}

// AsWhole restricts the value to whole numbers
func (p *ParameterSlider) AsWhole() *ParameterSlider {
	p.Whole = true
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a description/help text
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Reset loads a value from outside the slider, widening the range when the
// value falls outside it.
func (p *ParameterSlider) Reset(value float64) {
	if value < p.Min {
		p.Min = value
	}
	if value > p.Max {
		p.Max = value
	}
	p.Value = value
}

// Increment increases the value by one step, stopping at Max.
func (p *ParameterSlider) Increment() bool {
	return p.move(1)
}

// Decrement decreases the value by one step, stopping at Min.
func (p *ParameterSlider) Decrement() bool {
	return p.move(-1)
}

func (p *ParameterSlider) move(direction int64) bool {
	next := decimal.NewFromFloat(p.Value).
		Add(decimal.NewFromFloat(p.Step).Mul(decimal.NewFromInt(direction))).
		InexactFloat64()
	next = math.Max(p.Min, math.Min(p.Max, next))
	if next == p.Value {
		return false
	}
	p.Value = next
	return true
}

// SetValue sets the value directly. Values outside the range are rejected.
func (p *ParameterSlider) SetValue(value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", p.Label)
	}
	if p.Whole && value != math.Trunc(value) {
		return fmt.Errorf("%s must be a whole number", p.Label)
	}
	if value < p.Min || value > p.Max {
		return fmt.Errorf("%s must be between %s and %s", p.Label, p.EntryString(p.Min), p.EntryString(p.Max))
	}
	p.Value = value
	return nil
}

// ParseEntry converts typed text into a value, reading percentages for
// percent sliders, and applies it.
func (p *ParameterSlider) ParseEntry(text string) error {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	d, err := decimal.NewFromString(strings.ReplaceAll(text, ",", ""))
	if err != nil {
		return fmt.Errorf("%s: %q is not a number", p.Label, text)
	}
	if p.Percent {
		d = d.Div(decimal.NewFromInt(100))
	}
	return p.SetValue(d.InexactFloat64())
}

// EntryString renders v the way it would be typed.
func (p *ParameterSlider) EntryString(v float64) string {
	if p.Percent {
		return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).String()
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Percentage returns the value as a fraction of the range
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

func (p *ParameterSlider) display(v float64) string {
	if p.Display != nil {
		return p.Display(v)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Render returns the styled parameter slider
func (p *ParameterSlider) Render() string {
	var content strings.Builder

	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	content.WriteString(labelStyle.Render(p.Label))
	content.WriteString("  ")
	content.WriteString(valueStyle.Render(p.display(p.Value)))
	content.WriteString("\n")

	content.WriteString(p.renderSliderBar())

	rangeStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(" ")
	content.WriteString(rangeStyle.Render(fmt.Sprintf("%s ─ %s", p.display(p.Min), p.display(p.Max))))

	if p.IsFocused && p.Description != "" {
		content.WriteString("\n")
		descStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(descStyle.Render(p.Description))
	}

	return content.String()
}

// renderSliderBar creates the visual slider bar
func (p *ParameterSlider) renderSliderBar() string {
	filled := int(math.Round(float64(p.Width) * p.Percentage()))
	filled = max(0, min(p.Width, filled))
	empty := p.Width - filled

	trackStyle := tuistyles.SliderTrackStyle
	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if filled > 1 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", filled-1)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if empty > 1 {
		bar.WriteString(trackStyle.Render(strings.Repeat("─", empty-1)))
	}
	bar.WriteString("]")

	return bar.String()
}

// RenderCompact returns a compact single-line version
func (p *ParameterSlider) RenderCompact() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
	}
	return fmt.Sprintf("%s %s", labelStyle.Render(p.Label+":"), valueStyle.Render(p.display(p.Value)))
}
