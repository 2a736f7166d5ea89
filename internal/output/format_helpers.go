package output

import (
	"math"
	"strings"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is used when a report carries no currency symbol.
const DefaultCurrency = "$"

// Money formats amounts for one currency symbol and locale.
// English locales put the symbol first ("$1,234"); other locales put it
// after the number ("1.234 €").
type Money struct {
	Symbol      string
	symbolAfter bool
	printer     *message.Printer
}

// NewMoney builds a Money for symbol and a BCP 47 locale. An empty or
// unparseable locale falls back to English.
func NewMoney(symbol, locale string) Money {
	if symbol == "" {
		symbol = DefaultCurrency
	}
	tag := language.English
	if locale != "" {
		if parsed, err := language.Parse(locale); err == nil {
			tag = parsed
		}
	}
	base, _ := tag.Base()
	english, _ := language.English.Base()
	return Money{
		Symbol:      symbol,
		symbolAfter: base != english,
		printer:     message.NewPrinter(tag),
	}
}

// MoneyFor returns the formatter configured by a report.
func MoneyFor(report *domain.ProjectionReport) Money {
	if report == nil {
		return NewMoney("", "")
	}
	return NewMoney(report.Currency, report.Locale)
}

// Amount formats a value rounded to whole currency units with grouping.
func (m Money) Amount(v float64) string {
	rounded := decimal.NewFromFloat(v).Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + m.attach(m.sprintf("%.0f", rounded.InexactFloat64()))
}

// Short formats a threshold in thousands, e.g. "$100K" or "100K €".
func (m Money) Short(v float64) string {
	return m.attach(m.Thousands(v))
}

// Thousands formats v / 1000 with a K suffix and no currency symbol.
func (m Money) Thousands(v float64) string {
	k := v / 1000
	if k == math.Trunc(k) {
		return m.sprintf("%.0fK", k)
	}
	return m.sprintf("%.1fK", k)
}

// MilestoneLabel renders "100K €: 9.08 yrs".
func (m Money) MilestoneLabel(ms domain.Milestone) string {
	return m.Short(ms.ThresholdAmount) + ": " + FormatYears(ms.Years)
}

// IntervalLabel renders "100K→200K: 5.67 yrs".
func (m Money) IntervalLabel(iv domain.MilestoneInterval) string {
	return m.Thousands(iv.FromAmount) + "→" + m.Thousands(iv.ToAmount) + ": " + FormatYears(iv.Years)
}

// IntervalsLine joins every interval label with bullets.
func (m Money) IntervalsLine(ivs []domain.MilestoneInterval) string {
	labels := make([]string, len(ivs))
	for i, iv := range ivs {
		labels[i] = m.IntervalLabel(iv)
	}
	return strings.Join(labels, " • ")
}

func (m Money) attach(number string) string {
	symbol := m.Symbol
	if symbol == "" {
		symbol = DefaultCurrency
	}
	if m.symbolAfter {
		return number + " " + symbol
	}
	return symbol + number
}

// sprintf lets the zero Money format as English.
func (m Money) sprintf(format string, args ...any) string {
	if m.printer == nil {
		return message.NewPrinter(language.English).Sprintf(format, args...)
	}
	return m.printer.Sprintf(format, args...)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate renders a fractional rate (0.07) as "7.00%".
func FormatRate(rate float64) string {
	return FormatPercentage(decimal.NewFromFloat(rate).Mul(decimal.NewFromInt(100)))
}

// FormatCAGR renders the growth rate or "—" when it is undefined.
func FormatCAGR(cagr *float64) string {
	if cagr == nil {
		return "—"
	}
	return FormatPercentage(decimal.NewFromFloat(*cagr))
}

// FormatYears renders fractional years as "9.08 yrs".
func FormatYears(years float64) string {
	return decimal.NewFromFloat(years).StringFixed(2) + " yrs"
}
