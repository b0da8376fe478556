// Package ui hosts the interactive terminal interface.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"filezen/internal/config"
	"filezen/internal/ui/models"
)

// RunInteractive starts the interactive TUI mode
func RunInteractive(cfg *config.Config) error {
	m := models.NewAppModel(cfg)

	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running interactive mode: %w", err)
	}

	return nil
}
