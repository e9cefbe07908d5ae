package tui

import (
	"shopsphere/internal/model"
	"shopsphere/internal/session"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(s *session.Session) error {
	applyColorProfilePreference()
	applyThemePreference()

	p := tea.NewProgram(newAppModel(s), tea.WithAltScreen())
	// Snapshot deliveries (local echo or remote pushes) wake the UI.
	s.SetOnChange(func([]model.Shop) { p.Send(collectionChangedMsg{}) })
	_, err := p.Run()
	return err
}
