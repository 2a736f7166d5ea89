package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/dcasim/internal/output"
	"github.com/rgehrsitz/dcasim/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.projectorModel.SetSize(msg.Width, msg.Height)
		m.scenariosModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.ConfigLoadedMsg:
		m.config = msg.Config
		m.money = output.NewMoney(msg.Config.Defaults.Currency, msg.Config.Defaults.Locale)
		m.projectorModel.SetMoney(m.money)
		m.scenariosModel.SetScenarios(msg.Config, m.money)
		if len(msg.Config.Scenarios) > 0 {
			return m, m.selectScenario(0)
		}
		return m, m.requestProjection(m.projectorModel.Input())

	case tuimsg.ScenarioSelectedMsg:
		cmd := m.selectScenario(msg.Index)
		m.previousScene = m.currentScene
		m.currentScene = SceneProjector
		return m, cmd

	case tuimsg.InputChangedMsg:
		return m, m.requestProjection(msg.Input)

	case tuimsg.ProjectionCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.projectorModel.SetProjection(msg.Projection, msg.Err)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	// While a value is being typed every key belongs to the entry.
	if m.currentScene == SceneProjector && m.projectorModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, navigate(SceneHelp)

	case key.Matches(msg, m.keys.Back):
		if m.err != nil {
			m.err = nil
			return m, nil
		}
		if m.currentScene != SceneProjector {
			return m, navigate(SceneProjector)
		}
		return m, nil

	case key.Matches(msg, m.keys.Projector):
		return m, navigate(SceneProjector)

	case key.Matches(msg, m.keys.Scenarios):
		return m, navigate(SceneScenarios)

	case key.Matches(msg, m.keys.NextScenario):
		return m, m.cycleScenario(1)

	case key.Matches(msg, m.keys.PrevScenario):
		return m, m.cycleScenario(-1)
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneProjector:
		m.projectorModel, cmd = m.projectorModel.Update(msg)
	case SceneScenarios:
		m.scenariosModel, cmd = m.scenariosModel.Update(msg)
	}
	return m, cmd
}
