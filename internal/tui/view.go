package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.currentScene {
	case SceneProjector:
		content = m.projectorModel.View()
	case SceneScenarios:
		content = m.scenariosModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	if m.err != nil {
		content = lipgloss.JoinVertical(lipgloss.Left, m.renderError(), content)
	}
	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(0, m.height-4)
	container := lipgloss.NewStyle().
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("DCASIM - Monthly Investment Projector")

	breadcrumb := m.currentScene.String()
	if m.scenarioName != "" {
		breadcrumb = fmt.Sprintf("%s / %s", breadcrumb, m.scenarioName)
	}
	if m.config != nil && len(m.config.Scenarios) > 1 {
		breadcrumb += fmt.Sprintf(" (%d of %d)", m.selectedScenario+1, len(m.config.Scenarios))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(breadcrumb))
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := make([]string, 0, len(m.keys.shortHelp()))
	for _, b := range m.keys.shortHelp() {
		shortcuts = append(shortcuts, formatShortcut(b))
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.configPath != "" && m.config != nil {
		name := SubtitleStyle.Render(m.configPath)
		spacer := strings.Repeat(" ", max(1, m.width-lipgloss.Width(statusText)-lipgloss.Width(name)-2))
		statusText += spacer + name
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(b key.Binding) string {
	h := b.Help()
	return StatusKeyStyle.Render(h.Key) + " " + h.Desc
}

// renderError renders the current error above the scene
func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %s (esc to dismiss)", m.err))
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("KEYBOARD SHORTCUTS"))
	b.WriteString("\n\n")
	for _, binding := range m.keys.fullHelp() {
		h := binding.Help()
		b.WriteString(fmt.Sprintf("  %s %s\n", HelpKeyStyle.Render(fmt.Sprintf("%-10s", h.Key)), HelpDescStyle.Render(h.Desc)))
	}
	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("PROJECTOR"))
	b.WriteString("\n\n")
	for _, line := range [][2]string{
		{"↑/↓", "select an input"},
		{"←/→", "adjust by one step"},
		{"enter", "type an exact value (rates in percent)"},
		{"r", "reset to the scenario's values"},
	} {
		b.WriteString(fmt.Sprintf("  %s %s\n", HelpKeyStyle.Render(fmt.Sprintf("%-10s", line[0])), HelpDescStyle.Render(line[1])))
	}
	b.WriteString("\nEvery change reprojects; only the newest result is shown.")
	return BorderStyle.Render(b.String())
}
