package tui

import (
	"portal-cli/internal/api"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(client *api.Client, displayName string) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(client, displayName)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
