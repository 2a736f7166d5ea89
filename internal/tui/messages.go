package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneProjector Scene = iota
	SceneScenarios
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneProjector:
		return "Projector"
	case SceneScenarios:
		return "Scenarios"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
