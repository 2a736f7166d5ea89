package output

import (
	"encoding/json"

	"github.com/rgehrsitz/dcasim/internal/domain"
)

// JSONFormatter marshals the report as JSON. An undefined CAGR is null.
type JSONFormatter struct {
	Indent bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	if j.Indent {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
