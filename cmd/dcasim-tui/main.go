package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/dcasim/internal/tui"
)

func main() {
	// The scenario file is optional; without it the projector starts from
	// default inputs.
	configPath := ""
	if len(os.Args) > 2 {
		fmt.Println("Usage: dcasim-tui [config-file]")
		os.Exit(1)
	}
	if len(os.Args) == 2 {
		configPath = os.Args[1]
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			fmt.Printf("Error: Config file not found: %s\n", configPath)
			os.Exit(1)
		}
	}

	model := tui.NewModel(configPath)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
