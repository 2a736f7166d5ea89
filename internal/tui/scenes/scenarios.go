package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/dcasim/internal/domain"
	"github.com/rgehrsitz/dcasim/internal/output"
	"github.com/rgehrsitz/dcasim/internal/tui/components"
	"github.com/rgehrsitz/dcasim/internal/tui/tuimsg"
	"github.com/rgehrsitz/dcasim/internal/tui/tuistyles"
)

// ScenariosModel represents the scenarios browsing scene
type ScenariosModel struct {
	scenarios     []domain.Scenario
	defaults      domain.Defaults
	money         output.Money
	selectedIndex int
	cards         []*components.ScenarioCard
	width         int
	height        int
}

// NewScenariosModel creates a new scenarios scene model
func NewScenariosModel() *ScenariosModel {
	return &ScenariosModel{}
}

// SetScenarios loads the scenarios of a configuration
func (m *ScenariosModel) SetScenarios(cfg *domain.Configuration, money output.Money) {
	m.scenarios = nil
	m.cards = nil
	m.money = money
	if cfg == nil {
		m.selectedIndex = 0
		return
	}
	m.scenarios = cfg.Scenarios
	m.defaults = cfg.Defaults

	for i := range m.scenarios {
		m.cards = append(m.cards, components.NewScenarioCard(&m.scenarios[i], m.defaults, money))
	}

	if m.selectedIndex >= len(m.scenarios) {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *ScenariosModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Len returns the number of scenarios
func (m *ScenariosModel) Len() int {
	return len(m.scenarios)
}

// SetSelected moves the selection to index when it is in range
func (m *ScenariosModel) SetSelected(index int) {
	if index >= 0 && index < len(m.scenarios) {
		m.selectedIndex = index
	}
}

// SelectedIndex returns the highlighted scenario index
func (m *ScenariosModel) SelectedIndex() int {
	return m.selectedIndex
}

// SelectedScenario returns the currently selected scenario name
func (m *ScenariosModel) SelectedScenario() string {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.scenarios) {
		return m.scenarios[m.selectedIndex].Name
	}
	return ""
}

// Update handles messages for the scenarios scene
func (m *ScenariosModel) Update(msg tea.Msg) (*ScenariosModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

type scenariosKeyMap struct {
	Up, Down, Select, Top, Bottom, Back key.Binding
}

var scenariosKeys = scenariosKeyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "project")),
	Top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	// handled by the app model
	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

func (k scenariosKeyMap) help() string {
	bindings := []key.Binding{k.Up, k.Down, k.Select, k.Top, k.Bottom, k.Back}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = b.Help().Key + " " + b.Help().Desc
	}
	return strings.Join(parts, " • ")
}

func (m *ScenariosModel) handleKeyPress(msg tea.KeyMsg) (*ScenariosModel, tea.Cmd) {
	last := max(0, len(m.scenarios)-1)
	switch {
	case key.Matches(msg, scenariosKeys.Up):
		m.selectedIndex = max(0, m.selectedIndex-1)
	case key.Matches(msg, scenariosKeys.Down):
		m.selectedIndex = min(last, m.selectedIndex+1)
	case key.Matches(msg, scenariosKeys.Top):
		m.selectedIndex = 0
	case key.Matches(msg, scenariosKeys.Bottom):
		m.selectedIndex = last
	case key.Matches(msg, scenariosKeys.Select):
		return m, m.selectScenario()
	}
	return m, nil
}

// selectScenario returns a command to select the current scenario
func (m *ScenariosModel) selectScenario() tea.Cmd {
	name := m.SelectedScenario()
	if name == "" {
		return nil
	}
	index := m.selectedIndex

	return func() tea.Msg {
		return tuimsg.ScenarioSelectedMsg{Index: index, Name: name}
	}
}

// View renders the scenarios scene
func (m *ScenariosModel) View() string {
	if len(m.scenarios) == 0 {
		return renderEmptyState()
	}

	for i, card := range m.cards {
		card.Selected = i == m.selectedIndex
	}

	listStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(1, 2).
		Width(60)
	title := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).MarginBottom(1).Render("Scenarios")
	leftPane := listStyle.Render(title + "\n" + components.ScenarioMenu(m.cards, m.selectedIndex))

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPane,
		"  ",
		m.cards[m.selectedIndex].Render(),
	)

	return content + "\n\n" + renderScenariosHelp()
}

// renderEmptyState renders the empty state when no scenarios are loaded
func renderEmptyState() string {
	return `No scenarios available.

Start dcasim-tui with a scenario file to browse its scenarios.

Press ESC to return to the projector.`
}

func renderScenariosHelp() string {
	return tuistyles.HelpDescStyle.Render(scenariosKeys.help())
}
