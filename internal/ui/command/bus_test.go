package command

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cmdk-popup/internal/menu"
)

func TestExecuteRunsHandler(t *testing.T) {
	var got menu.Item
	handler := func(_ menu.Context, item menu.Item) tea.Cmd {
		got = item
		return func() tea.Msg { return menu.ActionResult{Output: item.Value()} }
	}
	msg := New(nil).Execute(menu.Context{}, Request{ID: "a", Label: "A", Handler: handler, Item: menu.Item{Label: "A"}})()
	res, ok := msg.(menu.ActionResult)
	if !ok || res.Output != "A" || got.Label != "A" {
		t.Fatalf("unexpected result %#v", msg)
	}
}

func TestExecuteSkipsMissingHandler(t *testing.T) {
	if msg := New(nil).Execute(menu.Context{}, Request{ID: "a"})(); msg != nil {
		t.Fatalf("expected nil message, got %#v", msg)
	}
	noop := func(menu.Context, menu.Item) tea.Cmd { return nil }
	if msg := New(nil).Execute(menu.Context{}, Request{ID: "a", Handler: noop})(); msg != nil {
		t.Fatalf("expected nil message from no-op handler, got %#v", msg)
	}
}

func TestExecuteOverride(t *testing.T) {
	shell := func(menu.Context, menu.Item) tea.Cmd {
		t.Fatalf("override should replace the request handler")
		return nil
	}
	bus := New(menu.PrintAction)
	msg := bus.Execute(menu.Context{}, Request{ID: "x", Handler: shell, Item: menu.Item{ID: "x", Label: "X"}})()
	if res := msg.(menu.ActionResult); res.Output != "x" {
		t.Fatalf("expected printed value, got %#v", res)
	}
}
