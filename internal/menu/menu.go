package menu

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Item represents a selectable palette entry.
type Item struct {
	ID       string   `toml:"value,omitempty" yaml:"value,omitempty"`
	Label    string   `toml:"label" yaml:"label"`
	Hint     string   `toml:"hint,omitempty" yaml:"hint,omitempty"`
	Keywords []string `toml:"keywords,omitempty" yaml:"keywords,omitempty"`
	Disabled bool     `toml:"disabled,omitempty" yaml:"disabled,omitempty"`
	Force    bool     `toml:"force,omitempty" yaml:"force,omitempty"`
	Action   string   `toml:"action,omitempty" yaml:"action,omitempty"`
	Command  string   `toml:"command,omitempty" yaml:"command,omitempty"`
}

// Value is the identifier used for selection, falling back to the label.
func (i Item) Value() string {
	if v := strings.TrimSpace(i.ID); v != "" {
		return v
	}
	return strings.TrimSpace(i.Label)
}

// Group is a headed run of items.
type Group struct {
	Heading  string   `toml:"heading" yaml:"heading"`
	Value    string   `toml:"value,omitempty" yaml:"value,omitempty"`
	Keywords []string `toml:"keywords,omitempty" yaml:"keywords,omitempty"`
	Force    bool     `toml:"force,omitempty" yaml:"force,omitempty"`
	Items    []Item   `toml:"items" yaml:"items"`
}

// Key identifies the group across reloads.
func (g Group) Key() string {
	if v := strings.TrimSpace(g.Value); v != "" {
		return v
	}
	return strings.TrimSpace(g.Heading)
}

// Menu is everything one source contributes. Ungrouped items render before
// the groups.
type Menu struct {
	Title       string  `toml:"title,omitempty" yaml:"title,omitempty"`
	Placeholder string  `toml:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Items       []Item  `toml:"items,omitempty" yaml:"items,omitempty"`
	Groups      []Group `toml:"groups,omitempty" yaml:"groups,omitempty"`
}

// Count returns the number of groups and items.
func (m Menu) Count() (groups, items int) {
	items = len(m.Items)
	for _, g := range m.Groups {
		items += len(g.Items)
	}
	return len(m.Groups), items
}

// Merge concatenates menus in order. The first non-empty title and
// placeholder win; groups sharing a key are folded together.
func Merge(menus ...Menu) Menu {
	var out Menu
	index := make(map[string]int)
	for _, m := range menus {
		if out.Title == "" {
			out.Title = m.Title
		}
		if out.Placeholder == "" {
			out.Placeholder = m.Placeholder
		}
		out.Items = append(out.Items, m.Items...)
		for _, g := range m.Groups {
			if pos, ok := index[g.Key()]; ok {
				out.Groups[pos].Items = append(out.Groups[pos].Items, g.Items...)
				continue
			}
			index[g.Key()] = len(out.Groups)
			g.Items = append([]Item(nil), g.Items...)
			out.Groups = append(out.Groups, g)
		}
	}
	return out
}

// Context carries runtime data needed by loaders and actions.
type Context struct {
	SocketPath string
	ClientID   string
}

// Loader produces a menu. It may be called repeatedly for live sources.
type Loader func(context.Context, Context) (Menu, error)

// Action runs when an item is chosen.
type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing an action. Output is
// printed to stdout once the program exits.
type ActionResult struct {
	Info   string
	Output string
	Err    error
}
