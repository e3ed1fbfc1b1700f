package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cmdk-popup/internal/logging/events"
)

// handleKeyMsg gives the palette first pick of every key; anything it does
// not consume edits the search input.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.cancel("interrupt")
	case "esc":
		return m.handleEscapeKey()
	}
	if m.cmd.HandleKey(keyMsg) {
		return nil
	}
	return m.handleTextInput(keyMsg)
}

// handleEscapeKey clears a non-empty search first and dismisses the palette
// otherwise.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.input.Value() != "" {
		m.input.Reset()
		m.cmd.SetSearch("")
		events.Filter.Cleared(m.cmd.ID())
		return nil
	}
	return m.cancel("escape")
}

func (m *Model) cancel(reason string) tea.Cmd {
	m.cancelled = true
	m.dialog.SetOpen(false, reason)
	return tea.Quit
}

// handleMouseMsg maps pointer rows onto items. Motion selects without
// scrolling, a left press activates and the wheel scrolls the list.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.list.viewport.Scroll(-1, len(m.list.lines()))
		return nil
	case tea.MouseButtonWheelDown:
		m.list.viewport.Scroll(1, len(m.list.lines()))
		return nil
	}
	it := m.list.itemAt(ev.Y - m.listTop())
	if it == nil {
		return nil
	}
	switch {
	case ev.Action == tea.MouseActionMotion:
		events.UI.Pointer(it.Value(), false)
		it.PointerMove()
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		events.UI.Pointer(it.Value(), true)
		it.Click()
	}
	return nil
}
