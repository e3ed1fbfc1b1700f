package palette

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds navigation keys. Terminals rarely report the meta key, so
// ctrl+arrows stand in for jumps to the first and last item.
type KeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	NextGroup key.Binding
	PrevGroup key.Binding
	First     key.Binding
	Last      key.Binding
	PageDown  key.Binding
	PageUp    key.Binding
	Activate  key.Binding
}

// NewKeyMap returns the default bindings, with ctrl+n/j/p/k chords when vim
// is set.
func NewKeyMap(vim bool) KeyMap {
	next := []string{"down"}
	prev := []string{"up"}
	nextGroup := []string{"alt+down"}
	prevGroup := []string{"alt+up"}
	if vim {
		next = append(next, "ctrl+n", "ctrl+j")
		prev = append(prev, "ctrl+p", "ctrl+k")
		nextGroup = append(nextGroup, "alt+ctrl+n", "alt+ctrl+j")
		prevGroup = append(prevGroup, "alt+ctrl+p", "alt+ctrl+k")
	}
	return KeyMap{
		Next:      key.NewBinding(key.WithKeys(next...), key.WithHelp("↓", "next")),
		Prev:      key.NewBinding(key.WithKeys(prev...), key.WithHelp("↑", "previous")),
		NextGroup: key.NewBinding(key.WithKeys(nextGroup...), key.WithHelp("alt+↓", "next group")),
		PrevGroup: key.NewBinding(key.WithKeys(prevGroup...), key.WithHelp("alt+↑", "previous group")),
		First:     key.NewBinding(key.WithKeys("home", "ctrl+up"), key.WithHelp("home", "first")),
		Last:      key.NewBinding(key.WithKeys("end", "ctrl+down"), key.WithHelp("end", "last")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		Activate:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// ShortHelp lists the bindings shown in a footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.NextGroup, k.Activate}
}

// KeyMap returns the active bindings.
func (c *Command) KeyMap() KeyMap { return c.keys }

// HandleKey applies a navigation key. It reports whether the key was
// consumed; consumed keys must not reach the search input.
func (c *Command) HandleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, c.keys.NextGroup):
		c.MoveByGroup(1)
	case key.Matches(msg, c.keys.PrevGroup):
		c.MoveByGroup(-1)
	case key.Matches(msg, c.keys.Next):
		c.MoveBy(1, c.opts.Loop)
	case key.Matches(msg, c.keys.Prev):
		c.MoveBy(-1, c.opts.Loop)
	case key.Matches(msg, c.keys.First):
		c.MoveToEdge(First)
	case key.Matches(msg, c.keys.Last):
		c.MoveToEdge(Last)
	case key.Matches(msg, c.keys.PageDown):
		c.MoveByPage(1, c.opts.PageSize)
	case key.Matches(msg, c.keys.PageUp):
		c.MoveByPage(-1, c.opts.PageSize)
	case key.Matches(msg, c.keys.Activate):
		c.Activate()
	default:
		return false
	}
	return true
}
