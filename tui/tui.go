package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"avalanche/cortex"
	"avalanche/warehouse"
)

// Start launches the TUI around an established warehouse session and
// completion provider.
func Start(ex warehouse.Executor, provider cortex.Provider) error {
	app := NewApp(ex, provider)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err := p.Run()
	return err
}
