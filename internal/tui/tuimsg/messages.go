package tuimsg

import (
	"github.com/rgehrsitz/dcasim/internal/domain"
)

// ConfigLoadedMsg signals a scenario file has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ScenarioSelectedMsg signals a scenario has been selected
type ScenarioSelectedMsg struct {
	Index int
	Name  string
}

// InputChangedMsg signals one of the projection inputs has changed
type InputChangedMsg struct {
	Input domain.SimulationInput
}

// ProjectionCompleteMsg carries the engine result for the request numbered Seq.
type ProjectionCompleteMsg struct {
	Seq        int
	Projection *domain.Projection
	Err        error
}
