package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }

func postProjection(h *ProjectionHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projections", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.Project(w, req)
	return w
}

func TestProjectionHandler_OK(t *testing.T) {
	h := NewProjectionHandler(nil, nil, nil, 0)

	w := postProjection(h, `{"monthlyContribution": 500, "annualReturnRate": 0.07, "durationYears": 10}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Contains(t, w.Body.String(), `"milestones":[]`)

	var p domain.Projection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Len(t, p.YearlySeries, 10)
	assert.InDelta(t, 87047.2344, p.Summary.FinalValueNominal, 1e-3)
	assert.InDelta(t, 60000.0, p.Summary.TotalInvested, 1e-9)
	require.NotNil(t, p.Summary.CAGRPercent)
	assert.InDelta(t, 3.79116, *p.Summary.CAGRPercent, 1e-4)
	assert.Equal(t, domain.DefaultMilestoneStep, p.MilestoneStep)
}

func TestProjectionHandler_CachesIdenticalInputs(t *testing.T) {
	cache := NewMemoryCache(0)
	logger := &recordingLogger{}
	h := NewProjectionHandler(nil, cache, logger, 0)

	body := `{"monthlyContribution": 500, "initialCapital": 10000, "annualReturnRate": 0.08, "durationYears": 20}`
	first := postProjection(h, body)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, cache.Len())

	// same input, different field order and explicit zero inflation
	second := postProjection(h, `{"durationYears": 20, "annualReturnRate": 0.08, "initialCapital": 10000, "monthlyContribution": 500, "annualInflationRate": 0}`)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, cache.Len())
	assert.Contains(t, strings.Join(logger.lines, "\n"), "projection cache hit")
}

func TestProjectionHandler_CustomStep(t *testing.T) {
	h := NewProjectionHandler(nil, nil, nil, 0)

	w := postProjection(h, `{"monthlyContribution": 500, "initialCapital": 10000, "annualReturnRate": 0.08, "durationYears": 20, "milestoneStep": 50000}`)
	require.Equal(t, http.StatusOK, w.Code)

	var p domain.Projection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 50000.0, p.MilestoneStep)
	assert.Len(t, p.Milestones, 6)
	assert.Len(t, p.Intervals, 5)
}

func TestProjectionHandler_UndefinedCAGRIsNull(t *testing.T) {
	h := NewProjectionHandler(nil, nil, nil, 0)

	w := postProjection(h, `{"monthlyContribution": 0, "annualReturnRate": 0.05, "durationYears": 1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cagrPercent":null`)
}

func TestProjectionHandler_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		maxYears int
		body     string
		field    string
	}{
		{"missing duration", 0, `{"monthlyContribution": 500, "annualReturnRate": 0.07}`, "durationYears"},
		{"missing contribution", 0, `{"annualReturnRate": 0.07, "durationYears": 10}`, "monthlyContribution"},
		{"missing rate", 0, `{"monthlyContribution": 500, "durationYears": 10}`, "annualReturnRate"},
		{"fractional duration", 0, `{"monthlyContribution": 500, "annualReturnRate": 0.07, "durationYears": 10.5}`, "durationYears"},
		{"zero duration", 0, `{"monthlyContribution": 500, "annualReturnRate": 0.07, "durationYears": 0}`, "durationYears"},
		{"beyond hard limit", 0, `{"monthlyContribution": 500, "annualReturnRate": 0.07, "durationYears": 101}`, "durationYears"},
		{"beyond configured limit", 30, `{"monthlyContribution": 500, "annualReturnRate": 0.07, "durationYears": 40}`, "durationYears"},
		{"negative contribution", 0, `{"monthlyContribution": -1, "annualReturnRate": 0.07, "durationYears": 10}`, "monthlyContribution"},
		{"negative capital", 0, `{"monthlyContribution": 1, "initialCapital": -5, "annualReturnRate": 0.07, "durationYears": 10}`, "initialCapital"},
		{"inflation above one", 0, `{"monthlyContribution": 1, "annualReturnRate": 0.07, "durationYears": 10, "annualInflationRate": 2}`, "annualInflationRate"},
		{"zero step", 0, `{"monthlyContribution": 1, "annualReturnRate": 0.07, "durationYears": 10, "milestoneStep": 0}`, "milestoneStep"},
		{"step too small", 0, `{"monthlyContribution": 500, "annualReturnRate": 0.07, "durationYears": 10, "milestoneStep": 0.01}`, "milestoneStep"},
		{"rate overflows", 0, `{"monthlyContribution": 1, "annualReturnRate": 1e300, "durationYears": 1}`, "annualReturnRate"},
		{"rate overflows over a century", 0, `{"monthlyContribution": 500, "annualReturnRate": 12, "durationYears": 100}`, "annualReturnRate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProjectionHandler(nil, nil, nil, tt.maxYears)
			w := postProjection(h, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "invalid_input", resp.Error)
			assert.Equal(t, tt.field, resp.Field)
		})
	}
}

func TestProjectionHandler_BadRequest(t *testing.T) {
	h := NewProjectionHandler(nil, nil, nil, 0)

	for _, body := range []string{`{invalid-json}`, `{"monthlyContribution": 500, "surprise": true}`, ``} {
		w := postProjection(h, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "invalid_request", resp.Error)
	}
}

func TestProjectionHandler_MethodNotAllowed(t *testing.T) {
	h := NewProjectionHandler(nil, nil, nil, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projections", nil)
	w := httptest.NewRecorder()
	h.Project(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodPost, w.Header().Get("Allow"))
}

func TestProjectionRequest_ToInputDefaults(t *testing.T) {
	monthly, rate, years := 250.0, 0.05, 15.0
	in, step, err := ProjectionRequest{MonthlyContribution: &monthly, AnnualReturnRate: &rate, DurationYears: &years}.ToInput(domain.MaxDurationYears)
	require.NoError(t, err)

	assert.Equal(t, domain.SimulationInput{MonthlyContribution: 250, AnnualReturnRate: 0.05, DurationYears: 15}, in)
	assert.Equal(t, domain.DefaultMilestoneStep, step)
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	Health(w, httptest.NewRequest(http.MethodPost, "/healthz", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
