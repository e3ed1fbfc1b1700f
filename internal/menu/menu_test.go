package menu

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/cmdk-popup/internal/tmux"
)

func withStub[T any](t *testing.T, target *T, value T) {
	t.Helper()
	original := *target
	*target = value
	t.Cleanup(func() { *target = original })
}

const tomlMenu = `
title = "Launcher"
placeholder = "Run something..."

[[items]]
label = "Home"

[[groups]]
heading = "Tools"

[[groups.items]]
label = "Uptime"
action = "shell"
command = "uptime"
keywords = ["load"]

[[groups.items]]
label = "Broken"
disabled = true
`

const yamlMenu = `
title: Launcher
items:
  - label: Home
groups:
  - heading: Tools
    items:
      - label: Uptime
        action: shell
        command: uptime
        keywords: [load]
      - label: Broken
        disabled: true
`

func TestParseTOMLAndYAMLAgree(t *testing.T) {
	fromTOML, err := Parse([]byte(tomlMenu), FormatTOML)
	if err != nil {
		t.Fatalf("toml: %v", err)
	}
	fromYAML, err := Parse([]byte(yamlMenu), FormatYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	fromYAML.Placeholder = fromTOML.Placeholder
	if diff := cmp.Diff(fromTOML, fromYAML); diff != "" {
		t.Fatalf("formats disagree (-toml +yaml):\n%s", diff)
	}
	groups, items := fromTOML.Count()
	if groups != 1 || items != 3 {
		t.Fatalf("expected 1 group and 3 items, got %d and %d", groups, items)
	}
	if fromTOML.Groups[0].Items[0].Keywords[0] != "load" {
		t.Fatalf("keywords not decoded: %#v", fromTOML.Groups[0].Items[0])
	}
}

func TestParseRejectsInvalidMenus(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "title = \"x\"\nbogus = 1\n",
		"missing label":  "[[items]]\nhint = \"h\"\n",
		"unknown action": "[[items]]\nlabel = \"a\"\naction = \"launch\"\n",
		"empty shell":    "[[items]]\nlabel = \"a\"\naction = \"shell\"\n",
		"headless group": "[[groups]]\n[[groups.items]]\nlabel = \"a\"\n",
	}
	for name, data := range cases {
		if _, err := Parse([]byte(data), FormatTOML); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := Parse([]byte("items: [}"), FormatYAML); err == nil {
		t.Fatalf("expected yaml syntax error")
	}
	if _, err := Parse(nil, Format("ini")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestParseEmptyYAML(t *testing.T) {
	m, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, items := m.Count(); items != 0 {
		t.Fatalf("expected empty menu, got %d items", items)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "menu.yml")
	if err := os.WriteFile(path, []byte(yamlMenu), 0o644); err != nil {
		t.Fatal(err)
	}
	src := FileSource(path)
	if src.Name != "file:menu.yml" {
		t.Fatalf("unexpected source name %q", src.Name)
	}
	if !src.Live {
		t.Fatalf("expected file sources to be polled")
	}
	m, err := src.Load(context.Background(), Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Title != "Launcher" {
		t.Fatalf("expected title Launcher, got %q", m.Title)
	}
	if _, err := LoadFile(filepath.Join(dir, "menu.json")); err == nil {
		t.Fatalf("expected extension error")
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Fatalf("expected read error")
	}
}

func TestParseLines(t *testing.T) {
	input := "Open\tctrl+o\n\n## Recent\nnotes.md\r\ntodo.md\t2d ago\n"
	m, err := ParseLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Menu{
		Items: []Item{{Label: "Open", Hint: "ctrl+o"}},
		Groups: []Group{{
			Heading: "Recent",
			Items:   []Item{{Label: "notes.md"}, {Label: "todo.md", Hint: "2d ago"}},
		}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("unexpected menu (-want +got):\n%s", diff)
	}
}

func TestMergeFoldsGroups(t *testing.T) {
	a := Menu{Title: "A", Items: []Item{{Label: "one"}}, Groups: []Group{{Heading: "G", Items: []Item{{Label: "x"}}}}}
	b := Menu{Title: "B", Placeholder: "p", Groups: []Group{{Heading: "G", Items: []Item{{Label: "y"}}}, {Heading: "H"}}}
	m := Merge(a, b)
	if m.Title != "A" || m.Placeholder != "p" {
		t.Fatalf("unexpected header %q %q", m.Title, m.Placeholder)
	}
	if len(m.Groups) != 2 || len(m.Groups[0].Items) != 2 {
		t.Fatalf("unexpected groups %#v", m.Groups)
	}
	if len(a.Groups[0].Items) != 1 {
		t.Fatalf("merge mutated its input")
	}
}

func TestRegistryLoadAllKeepsOrder(t *testing.T) {
	slow := make(chan struct{})
	r := NewRegistry(
		Source{Name: "first", Load: func(context.Context, Context) (Menu, error) {
			<-slow
			return Menu{Items: []Item{{Label: "1"}}}, nil
		}},
		Source{Name: "second", Live: true, Load: func(context.Context, Context) (Menu, error) {
			close(slow)
			return Menu{Items: []Item{{Label: "2"}}}, nil
		}},
		Source{Name: "ignored"},
	)
	loaded, err := r.LoadAll(context.Background(), Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Source != "first" || loaded[1].Source != "second" {
		t.Fatalf("unexpected results %#v", loaded)
	}
	if names := r.Names(); len(names) != 2 {
		t.Fatalf("expected sources without loaders to be dropped, got %v", names)
	}
	if live := r.Live(); len(live) != 1 || live[0].Name != "second" {
		t.Fatalf("unexpected live sources %#v", live)
	}
}

func TestRegistryLoadAllError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRegistry(Source{Name: "bad", Load: func(context.Context, Context) (Menu, error) { return Menu{}, boom }})
	_, err := r.LoadAll(context.Background(), Context{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if !strings.Contains(err.Error(), "load bad") {
		t.Fatalf("expected source name in error, got %v", err)
	}
}

func TestActionFor(t *testing.T) {
	msg := ActionFor(Item{ID: "v", Label: "Label"})(Context{}, Item{ID: "v", Label: "Label"})()
	res, ok := msg.(ActionResult)
	if !ok || res.Output != "v" || res.Err != nil {
		t.Fatalf("unexpected print result %#v", msg)
	}
	if ActionFor(Item{Action: "nope"}) != nil {
		t.Fatalf("expected nil handler for unknown action")
	}
}

func TestShellActionUsesStub(t *testing.T) {
	var got string
	withStub(t, &runShellFn, func(_ context.Context, command string) ([]byte, error) {
		got = command
		return []byte("ok\n"), nil
	})
	res := ShellAction(Context{}, Item{Label: "Run", Command: " echo ok "})().(ActionResult)
	if res.Err != nil || res.Output != "ok" || got != "echo ok" {
		t.Fatalf("unexpected result %#v (command %q)", res, got)
	}
	res = ShellAction(Context{}, Item{Label: "Empty"})().(ActionResult)
	if res.Err == nil {
		t.Fatalf("expected error for missing command")
	}
}

func TestTmuxSwitchActionUsesStub(t *testing.T) {
	var socket, client, target string
	withStub(t, &switchClientFn, func(s, c, tgt string) error {
		socket, client, target = s, c, tgt
		return nil
	})
	ctx := Context{SocketPath: "sock", ClientID: "/dev/pts/1"}
	res := TmuxSwitchAction(ctx, Item{ID: "work:1", Label: "logs"})().(ActionResult)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if socket != "sock" || client != "/dev/pts/1" || target != "work:1" {
		t.Fatalf("unexpected switch args %q %q %q", socket, client, target)
	}
}

func TestTmuxSource(t *testing.T) {
	withStub(t, &fetchSessionsFn, func(string) (tmux.SessionSnapshot, error) {
		return tmux.SessionSnapshot{Sessions: []tmux.Session{
			{Name: "work", Label: "work: 2 windows", Current: true, Windows: 2},
			{Name: "play", Attached: true, Windows: 1},
		}}, nil
	})
	withStub(t, &fetchWindowsFn, func(string) (tmux.WindowSnapshot, error) {
		return tmux.WindowSnapshot{
			Windows:   []tmux.Window{{ID: "work:0", Session: "work", Name: "editor"}},
			CurrentID: "work:0",
		}, nil
	})
	src := TmuxSource()
	if !src.Live {
		t.Fatalf("tmux source should be live")
	}
	m, err := src.Load(context.Background(), Context{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Groups) != 2 {
		t.Fatalf("expected sessions and windows groups, got %d", len(m.Groups))
	}
	sessions := m.Groups[0].Items
	if sessions[0].Hint != "current" || sessions[1].Hint != "attached" {
		t.Fatalf("unexpected session hints %#v", sessions)
	}
	window := m.Groups[1].Items[0]
	if window.Value() != "work:0" || window.Hint != "work:0 current" || window.Action != ActionTmuxSwitch {
		t.Fatalf("unexpected window item %#v", window)
	}
	if err := Validate(m); err != nil {
		t.Fatalf("tmux menu should validate: %v", err)
	}

	withStub(t, &fetchWindowsFn, func(string) (tmux.WindowSnapshot, error) {
		return tmux.WindowSnapshot{}, errors.New("gone")
	})
	if _, err := src.Load(context.Background(), Context{}); err == nil {
		t.Fatalf("expected window error")
	}
}
