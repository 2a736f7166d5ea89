package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/rgehrsitz/dcasim/internal/calculation"
	"github.com/rgehrsitz/dcasim/internal/domain"
)

// ProjectionRequest is the JSON body of POST /api/v1/projections.
// Pointers separate a missing field from an explicit zero.
type ProjectionRequest struct {
	MonthlyContribution *float64 `json:"monthlyContribution"`
	InitialCapital      *float64 `json:"initialCapital"`
	AnnualReturnRate    *float64 `json:"annualReturnRate"`
	DurationYears       *float64 `json:"durationYears"`
	AnnualInflationRate *float64 `json:"annualInflationRate"`
	MilestoneStep       *float64 `json:"milestoneStep"`
}

// ToInput validates the request and converts it to an engine input and step.
func (req ProjectionRequest) ToInput(maxYears int) (domain.SimulationInput, float64, error) {
	if req.MonthlyContribution == nil {
		return domain.SimulationInput{}, 0, domain.NewInputError("monthlyContribution", "is required")
	}
	if req.AnnualReturnRate == nil {
		return domain.SimulationInput{}, 0, domain.NewInputError("annualReturnRate", "is required")
	}
	if req.DurationYears == nil {
		return domain.SimulationInput{}, 0, domain.NewInputError("durationYears", "is required")
	}
	years := *req.DurationYears
	if years != math.Trunc(years) {
		return domain.SimulationInput{}, 0, domain.NewInputError("durationYears", "must be a whole number of years")
	}
	if years > float64(maxYears) {
		return domain.SimulationInput{}, 0, domain.NewInputError("durationYears", fmt.Sprintf("cannot exceed %d years", maxYears))
	}

	in := domain.SimulationInput{
		MonthlyContribution: *req.MonthlyContribution,
		AnnualReturnRate:    *req.AnnualReturnRate,
		DurationYears:       int(years),
	}
	if req.InitialCapital != nil {
		in.InitialCapital = *req.InitialCapital
	}
	if req.AnnualInflationRate != nil {
		in.AnnualInflationRate = *req.AnnualInflationRate
	}
	if err := in.Validate(); err != nil {
		return domain.SimulationInput{}, 0, err
	}

	step := domain.DefaultMilestoneStep
	if req.MilestoneStep != nil {
		step = *req.MilestoneStep
		if err := domain.ValidateMilestoneStep(step); err != nil {
			return domain.SimulationInput{}, 0, err
		}
	}
	return in, step, nil
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ProjectionHandler serves projections, memoized by input.
type ProjectionHandler struct {
	engine   *calculation.ProjectionEngine
	cache    CacheRepository
	logger   calculation.Logger
	maxYears int
}

func NewProjectionHandler(engine *calculation.ProjectionEngine, cache CacheRepository, logger calculation.Logger, maxYears int) *ProjectionHandler {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	if cache == nil {
		cache = NewMemoryCache(0)
	}
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	if maxYears <= 0 || maxYears > domain.MaxDurationYears {
		maxYears = domain.MaxDurationYears
	}
	return &ProjectionHandler{engine: engine, cache: cache, logger: logger, maxYears: maxYears}
}

func (h *ProjectionHandler) Project(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var req ProjectionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	in, step, err := req.ToInput(h.maxYears)
	if err != nil {
		h.writeProjectionError(w, err)
		return
	}

	key := CacheKey(in, step)
	if cached, ok := h.cache.Get(r.Context(), key); ok {
		h.logger.Debugf("projection cache hit %s", key)
		writeJSONBytes(w, http.StatusOK, []byte(cached), "HIT")
		return
	}

	projection, err := h.engine.ProjectWithStep(in, step)
	if err != nil {
		h.writeProjectionError(w, err)
		return
	}
	body, err := json.Marshal(projection)
	if err != nil {
		h.logger.Errorf("encode projection: %v", err)
		writeError(w, http.StatusInternalServerError, "internal", "failed to encode projection")
		return
	}
	if err := h.cache.Set(r.Context(), key, string(body)); err != nil {
		h.logger.Warnf("projection cache set failed: %v", err)
	}
	writeJSONBytes(w, http.StatusOK, body, "MISS")
}

func (h *ProjectionHandler) writeProjectionError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		resp := ErrorResponse{Error: "invalid_input", Message: err.Error()}
		var inputErr *domain.InputError
		if errors.As(err, &inputErr) {
			resp.Field = inputErr.Field
		}
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}
	h.logger.Errorf("projection failed: %v", err)
	writeError(w, http.StatusInternalServerError, "internal", "projection failed")
}

// Health answers liveness probes.
func Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONBytes(w http.ResponseWriter, status int, body []byte, cacheStatus string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cacheStatus)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
