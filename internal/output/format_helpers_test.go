package output

import (
	"testing"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney_Amount(t *testing.T) {
	tests := []struct {
		name   string
		money  Money
		amount float64
		want   string
	}{
		{"english grouping", NewMoney("$", "en-US"), 1234567.4, "$1,234,567"},
		{"rounds half away from zero", NewMoney("$", "en"), 2.5, "$3"},
		{"negative", NewMoney("$", "en"), -1500, "-$1,500"},
		{"german symbol after", NewMoney("€", "de"), 1234567, "1.234.567 €"},
		{"empty symbol defaults", NewMoney("", ""), 1000, "$1,000"},
		{"bad locale falls back", NewMoney("£", "not a locale!!"), 1000, "£1,000"},
		{"zero value", Money{}, 1000, "$1,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.money.Amount(tt.amount))
		})
	}
}

func TestMoney_Labels(t *testing.T) {
	en := NewMoney("$", "en")
	fr := NewMoney("€", "fr")

	assert.Equal(t, "$100K", en.Short(100000))
	assert.Equal(t, "100K €", fr.Short(100000))
	assert.Equal(t, "1,500K", en.Thousands(1500000))
	assert.Equal(t, "12.5K", en.Thousands(12500))

	ms := domain.Milestone{ThresholdAmount: 100000, MonthIndex: 109, Years: 109.0 / 12}
	assert.Equal(t, "100K €: 9.08 yrs", fr.MilestoneLabel(ms))

	ivs := []domain.MilestoneInterval{
		{FromAmount: 100000, ToAmount: 200000, Years: 68.0 / 12},
		{FromAmount: 200000, ToAmount: 300000, Years: 46.0 / 12},
	}
	assert.Equal(t, "100K→200K: 5.67 yrs", en.IntervalLabel(ivs[0]))
	assert.Equal(t, "100K→200K: 5.67 yrs • 200K→300K: 3.83 yrs", en.IntervalsLine(ivs))
	assert.Equal(t, "", en.IntervalsLine(nil))
}

func TestMoneyFor(t *testing.T) {
	assert.Equal(t, "$1,000", MoneyFor(nil).Amount(1000))
	assert.Equal(t, "1.000 €", MoneyFor(&domain.ProjectionReport{Currency: "€", Locale: "de"}).Amount(1000))
}

func TestPercentHelpers(t *testing.T) {
	assert.Equal(t, "7.00%", FormatRate(0.07))
	assert.Equal(t, "-2.50%", FormatRate(-0.025))
	assert.Equal(t, "12.35%", FormatPercentage(decimal.RequireFromString("12.345")))

	cagr := 3.7911616595538877
	assert.Equal(t, "3.79%", FormatCAGR(&cagr))
	assert.Equal(t, "—", FormatCAGR(nil))
	assert.Equal(t, "9.08 yrs", FormatYears(109.0/12))
}
