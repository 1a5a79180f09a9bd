// Package tui is the interactive terminal client: browse published
// posts, read them safely rendered, and author new ones with optional
// AI assistance.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"inkwell/internal/client"
)

// Run starts the TUI against the given API client. author pre-fills
// the author field for new drafts; it may be empty.
func Run(api *client.Client, author string) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(api, author)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
