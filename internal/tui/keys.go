package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global bindings. Scene keys live in the scenes.
type keyMap struct {
	Quit         key.Binding
	ForceQuit    key.Binding
	Help         key.Binding
	Back         key.Binding
	Projector    key.Binding
	Scenarios    key.Binding
	NextScenario key.Binding
	PrevScenario key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Projector:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "projector")),
		Scenarios:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scenarios")),
		NextScenario: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next scenario")),
		PrevScenario: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous scenario")),
	}
}

// shortHelp lists the bindings shown in the status bar.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Projector, k.Scenarios, k.NextScenario, k.Help, k.Quit}
}

// fullHelp lists every global binding.
func (k keyMap) fullHelp() []key.Binding {
	return []key.Binding{k.Projector, k.Scenarios, k.NextScenario, k.PrevScenario, k.Help, k.Back, k.Quit, k.ForceQuit}
}
