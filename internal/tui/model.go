package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/dcasim/internal/calculation"
	"github.com/rgehrsitz/dcasim/internal/config"
	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/output"
	"github.com/rgehrsitz/dcasim/internal/tui/scenes"
	"github.com/rgehrsitz/dcasim/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration
	money      output.Money

	engine *calculation.ProjectionEngine

	// Projection requests are numbered; only the reply to the newest one
	// is shown.
	seq  int
	step float64

	selectedScenario int
	scenarioName     string

	projectorModel *scenes.ProjectorModel
	scenariosModel *scenes.ScenariosModel

	keys keyMap
	err  error
}

// NewModel creates a new application model. An empty configPath starts
// from the default input.
func NewModel(configPath string) Model {
	money := output.NewMoney("", "")
	return Model{
		currentScene:   SceneProjector,
		configPath:     configPath,
		money:          money,
		engine:         calculation.NewProjectionEngine(),
		step:           domain.DefaultMilestoneStep,
		projectorModel: scenes.NewProjectorModel(scenes.DefaultInput, money),
		scenariosModel: scenes.NewScenariosModel(),
		keys:           defaultKeyMap(),
		width:          80,
		height:         24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath != "" {
		return loadConfigCmd(m.configPath)
	}
	return func() tea.Msg {
		return tuimsg.InputChangedMsg{Input: m.projectorModel.Input()}
	}
}

// loadConfigCmd returns a command that loads the scenario file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return tuimsg.ErrorMsg{Err: err}
		}
		return tuimsg.ConfigLoadedMsg{Config: cfg}
	}
}

// projectCmd runs the engine off the update loop and tags the reply with seq.
func projectCmd(engine *calculation.ProjectionEngine, seq int, in domain.SimulationInput, step float64) tea.Cmd {
	return func() tea.Msg {
		p, err := engine.ProjectWithStep(in, step)
		return tuimsg.ProjectionCompleteMsg{Seq: seq, Projection: p, Err: err}
	}
}

// requestProjection starts a projection that supersedes any in flight.
func (m *Model) requestProjection(in domain.SimulationInput) tea.Cmd {
	m.seq++
	m.projectorModel.SetCalculating(true)
	return projectCmd(m.engine, m.seq, in, m.step)
}

// selectScenario loads scenario i into the projector and projects it.
func (m *Model) selectScenario(i int) tea.Cmd {
	if m.config == nil || i < 0 || i >= len(m.config.Scenarios) {
		return nil
	}
	sc := &m.config.Scenarios[i]
	in, err := sc.ToInput(m.config.Defaults)
	if err != nil {
		m.err = fmt.Errorf("scenario %q: %w", sc.Name, err)
		return nil
	}

	m.err = nil
	m.selectedScenario = i
	m.scenarioName = sc.Name
	m.step = sc.Step(m.config.Defaults)
	m.scenariosModel.SetSelected(i)
	m.projectorModel.SetScenarioName(sc.Name)
	m.projectorModel.SetInput(in)
	return m.requestProjection(in)
}

// cycleScenario moves the selection by delta, wrapping around.
func (m *Model) cycleScenario(delta int) tea.Cmd {
	if m.config == nil || len(m.config.Scenarios) == 0 {
		return nil
	}
	n := len(m.config.Scenarios)
	return m.selectScenario(((m.selectedScenario+delta)%n + n) % n)
}
