package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/cmdk-popup/internal/backend"
	"github.com/atomicstack/cmdk-popup/internal/menu"
	"github.com/atomicstack/cmdk-popup/internal/state"
)

func TestHandleUpdatesStore(t *testing.T) {
	store := state.NewMenuStore("tmux")
	d := New(store)
	m := menu.Menu{Groups: []menu.Group{{Heading: "Sessions", Items: []menu.Item{{Label: "work"}}}}}

	res := d.Handle(backend.Event{Source: "tmux", Menu: m})
	if !res.Changed || res.Source != "tmux" {
		t.Fatalf("unexpected result %#v", res)
	}
	if res := d.Handle(backend.Event{Source: "tmux", Menu: m}); res.Changed {
		t.Fatalf("identical reload should not report a change")
	}
}

func TestHandleKeepsMenuOnError(t *testing.T) {
	store := state.NewMenuStore()
	store.Set("tmux", menu.Menu{Items: []menu.Item{{Label: "keep"}}})
	d := New(store)
	res := d.Handle(backend.Event{Source: "tmux", Err: errors.New("no server")})
	if res.Changed || res.Err == nil {
		t.Fatalf("unexpected result %#v", res)
	}
	got, _ := store.Get("tmux")
	if len(got.Items) != 1 || got.Items[0].Label != "keep" {
		t.Fatalf("menu should survive a failed reload, got %#v", got)
	}
}
