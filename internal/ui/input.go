package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleTextInput forwards a key to the search input and pushes any change
// of its value into the palette.
func (m *Model) handleTextInput(msg tea.KeyMsg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.errMsg = ""
		m.cmd.SetSearch(after)
	}
	return cmd
}
