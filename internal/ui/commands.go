package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cmdk-popup/internal/logging"
	"github.com/atomicstack/cmdk-popup/internal/logging/events"
	"github.com/atomicstack/cmdk-popup/internal/menu"
	"github.com/atomicstack/cmdk-popup/internal/ui/command"
)

// sourceLoadedMsg carries the first load of one source.
type sourceLoadedMsg struct {
	source string
	menu   menu.Menu
	err    error
}

func (m *Model) loadSourceCmd(src menu.Source) tea.Cmd {
	mc := m.menuCtx
	return func() tea.Msg {
		loaded, err := src.Load(context.Background(), mc)
		if err != nil {
			logging.Error(err)
			events.Source.Error(src.Name, err)
		} else {
			groups, items := loaded.Count()
			events.Source.Load(src.Name, groups, items)
		}
		return sourceLoadedMsg{source: src.Name, menu: loaded, err: err}
	}
}

func (m *Model) handleSourceLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(sourceLoadedMsg)
	if !ok {
		return nil
	}
	if m.pending > 0 {
		m.pending--
	}
	if total := len(m.sources); total > 0 {
		m.loading.Progress = (total - m.pending) * 100 / total
	}
	if loaded.err != nil {
		m.errMsg = fmt.Sprintf("%s: %v", loaded.source, loaded.err)
		return nil
	}
	if m.menus.Set(loaded.source, loaded.menu) {
		m.applyMenus()
	}
	if m.pending == 0 {
		m.cmd.RevealSelected()
	}
	return nil
}

// applyMenus reconciles the palette with every source's latest menu.
func (m *Model) applyMenus() {
	merged := m.menus.Merged()
	if m.title == "" {
		m.title = merged.Title
	}
	if m.placeholder == "" && merged.Placeholder != "" {
		m.placeholder = merged.Placeholder
		m.input.Placeholder = merged.Placeholder
	}
	m.rec.apply(merged)
}

// Loading reports whether initial loads are still outstanding.
func (m *Model) Loading() bool {
	return m.pending > 0
}

// queueAction runs the chosen item's action once the current update settles.
func (m *Model) queueAction(key itemKey) {
	item, ok := m.rec.def(key)
	if !ok {
		return
	}
	req := command.Request{
		ID:      key.value,
		Label:   item.Label,
		Handler: menu.ActionFor(item),
		Item:    item,
	}
	m.errMsg = ""
	m.queued = append(m.queued, m.bus.Execute(m.menuCtx, req))
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(menu.ActionResult)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.infoMsg = ""
		logging.Error(result.Err)
		events.Action.Error(result.Err)
		return nil
	}
	m.infoMsg = result.Info
	m.output = result.Output
	events.Action.Success(result.Info)
	m.dialog.SetOpen(false, "select")
	return tea.Quit
}
