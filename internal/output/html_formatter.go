package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with an inline SVG chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

// money is rebound per report; the placeholder only satisfies Parse.
var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"money": func(float64) string { return "" },
	"short": func(float64) string { return "" },
	"rate":  FormatRate,
	"cagr":  FormatCAGR,
	"years": FormatYears,
	"num":   func(v float64) string { return fmt.Sprintf("%.1f", v) },
}).Parse(htmlTemplateSource))

type htmlScenario struct {
	domain.ScenarioProjection
	Chart      Chart
	Milestones []string
	Intervals  string
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("nil report")
	}
	money := MoneyFor(report)

	tmpl, err := htmlTemplate.Clone()
	if err != nil {
		return nil, err
	}
	tmpl.Funcs(template.FuncMap{"money": money.Amount, "short": money.Short})

	scenarios := make([]htmlScenario, 0, len(report.Scenarios))
	for _, sc := range report.Scenarios {
		hs := htmlScenario{ScenarioProjection: sc, Chart: BuildChart(sc.Projection, money)}
		if sc.Projection != nil {
			for _, ms := range sc.Projection.Milestones {
				hs.Milestones = append(hs.Milestones, money.MilestoneLabel(ms))
			}
			hs.Intervals = money.IntervalsLine(sc.Projection.Intervals)
		}
		scenarios = append(scenarios, hs)
	}

	data := struct {
		Scenarios    []htmlScenario
		NoMilestones string
	}{scenarios, NoMilestonesMessage}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
