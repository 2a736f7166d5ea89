package domain

// MonthlySeries is the month-indexed output of the recurrence.
// Index 0 holds the initial capital; index Months() holds the final month.
type MonthlySeries struct {
	PortfolioValue []float64 `json:"portfolioValue"`
	InvestedTotal  []float64 `json:"investedTotal"`
}

// Months returns the last month index of the series.
func (s MonthlySeries) Months() int {
	if len(s.PortfolioValue) == 0 {
		return 0
	}
	return len(s.PortfolioValue) - 1
}

// MaxValue returns the largest portfolio value in the series.
func (s MonthlySeries) MaxValue() float64 {
	if len(s.PortfolioValue) == 0 {
		return 0
	}
	maxValue := s.PortfolioValue[0]
	for _, v := range s.PortfolioValue[1:] {
		if v > maxValue {
			maxValue = v
		}
	}
	return maxValue
}

// Finite reports whether every value in the series is a finite number.
func (s MonthlySeries) Finite() bool {
	for i := range s.PortfolioValue {
		if !isFinite(s.PortfolioValue[i]) {
			return false
		}
	}
	for i := range s.InvestedTotal {
		if !isFinite(s.InvestedTotal[i]) {
			return false
		}
	}
	return true
}

// YearlyPoint is one completed year of the projection, rounded for reporting.
type YearlyPoint struct {
	Year           int     `json:"year"`
	PortfolioValue float64 `json:"portfolioValue"`
	InvestedTotal  float64 `json:"investedTotal"`
}

// Milestone is the first month the portfolio reached a threshold.
type Milestone struct {
	ThresholdAmount float64 `json:"thresholdAmount"`
	MonthIndex      int     `json:"monthIndex"`
	Years           float64 `json:"years"`
}

// MilestoneInterval is the time between two consecutive milestones.
type MilestoneInterval struct {
	FromAmount float64 `json:"fromAmount"`
	ToAmount   float64 `json:"toAmount"`
	Years      float64 `json:"years"`
}

// SimulationSummary holds the end-of-horizon figures.
// CAGRPercent is nil when the growth rate is undefined.
type SimulationSummary struct {
	TotalInvested      float64  `json:"totalInvested"`
	FinalValueNominal  float64  `json:"finalValueNominal"`
	FinalValueAdjusted float64  `json:"finalValueAdjusted"`
	TotalGains         float64  `json:"totalGains"`
	CAGRPercent        *float64 `json:"cagrPercent"`
}

// HasCAGR reports whether the growth rate is defined.
func (s SimulationSummary) HasCAGR() bool {
	return s.CAGRPercent != nil
}

// Projection is the full engine output for one input.
type Projection struct {
	Input         SimulationInput     `json:"input"`
	MilestoneStep float64             `json:"milestoneStep"`
	YearlySeries  []YearlyPoint       `json:"yearlySeries"`
	Milestones    []Milestone         `json:"milestones"`
	Intervals     []MilestoneInterval `json:"intervals"`
	Summary       SimulationSummary   `json:"summary"`
}

// FirstMilestone returns the earliest milestone, if any was reached.
func (p *Projection) FirstMilestone() (Milestone, bool) {
	if p == nil || len(p.Milestones) == 0 {
		return Milestone{}, false
	}
	return p.Milestones[0], true
}

// ScenarioProjection pairs a named scenario with its projection.
type ScenarioProjection struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Projection  *Projection `json:"projection"`
}

// ProjectionReport is the result of projecting every scenario in a configuration.
type ProjectionReport struct {
	Currency  string               `json:"currency"`
	Locale    string               `json:"locale"`
	Scenarios []ScenarioProjection `json:"scenarios"`
}
