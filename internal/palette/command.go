// Package palette is a headless command menu: a registry of mounted items and
// groups, a filter pass over their searchable text, and keyboard driven
// selection across whatever order the host renders them in.
//
// A Command is owned by a single goroutine. Mutations are applied immediately
// but their visible effects (rescoring, reselection, scrolling) are deferred
// until the host calls Settle, normally once at the end of each update.
package palette

import (
	"reflect"
	"strings"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/atomicstack/cmdk-popup/internal/logging/events"
	"github.com/atomicstack/cmdk-popup/internal/score"
)

const (
	defaultLabel     = "Command Menu"
	defaultPageSize  = 10
	maxSettlePasses  = 16
	defaultListLabel = "Suggestions"
)

// Options configure a Command. Use DefaultOptions as the starting point.
type Options struct {
	// Label is the accessible name of the menu.
	Label string
	// ShouldFilter disables scoring when false; every item stays visible.
	ShouldFilter bool
	// Filter overrides the scoring function. Nil selects score.Default.
	Filter score.Func
	// DefaultValue seeds the selection before anything is mounted.
	DefaultValue string
	// Loop wraps arrow navigation at both ends of the list.
	Loop bool
	// DisablePointerSelection stops pointer movement from selecting items.
	DisablePointerSelection bool
	// VimBindings enables ctrl+n/j/p/k chords.
	VimBindings bool
	// PageSize is the step used by page up and page down.
	PageSize int
}

// DefaultOptions returns filtering on, vim chords on and no looping.
func DefaultOptions() Options {
	return Options{
		Label:        defaultLabel,
		ShouldFilter: true,
		Filter:       score.Default,
		VimBindings:  true,
		PageSize:     defaultPageSize,
	}
}

// Props carry host-controlled state. A non-nil Value or Search makes that
// field controlled: internal writes are forwarded to the callback instead of
// being applied, and the prop is mirrored into internal state.
type Props struct {
	Value          *string
	OnValueChange  func(string)
	Search         *string
	OnSearchChange func(string)
}

// Layout reports every mounted item in visual order. The navigator filters
// it down to visible, enabled items.
type Layout interface {
	Items() []*Item
}

// Scroller brings an item into view. When heading is true the item is the
// first rendered member of its group and the group heading should be
// revealed before the item.
type Scroller interface {
	ScrollIntoView(item *Item, heading bool)
}

// Command is the root of a menu instance.
type Command struct {
	id      string
	opts    Options
	props   Props
	store   *store
	sched   *scheduler
	items   *orderedmap.OrderedMap[string, *Item]
	groups  *orderedmap.OrderedMap[string, *Group]
	layout  Layout
	scroll  Scroller
	keys    KeyMap
	mounted bool

	reselect bool
}

// New builds a Command. Call Settle after mounting the initial items.
func New(opts Options) *Command {
	if opts.Filter == nil {
		opts.Filter = score.Default
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if strings.TrimSpace(opts.Label) == "" {
		opts.Label = defaultLabel
	}
	c := &Command{
		id:     uuid.NewString(),
		opts:   opts,
		store:  newStore(),
		sched:  newScheduler(),
		items:  orderedmap.New[string, *Item](),
		groups: orderedmap.New[string, *Group](),
		keys:   NewKeyMap(opts.VimBindings),
	}
	if v := strings.TrimSpace(opts.DefaultValue); v != "" {
		c.store.setSelected(v)
	}
	c.sched.schedule(SlotMountScroll, c.scrollSelectedIntoView)
	return c
}

// ID is the root identifier used to derive accessible element ids.
func (c *Command) ID() string { return c.id }

// Options returns the active options.
func (c *Command) Options() Options { return c.opts }

// SetOptions replaces the options. Changing the filter or ShouldFilter
// triggers a rescore at the next settle.
func (c *Command) SetOptions(opts Options) {
	if opts.Filter == nil {
		opts.Filter = score.Default
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if strings.TrimSpace(opts.Label) == "" {
		opts.Label = defaultLabel
	}
	if opts.ShouldFilter != c.opts.ShouldFilter || !sameFunc(opts.Filter, c.opts.Filter) {
		c.store.dirty = true
	}
	if opts.VimBindings != c.opts.VimBindings {
		c.keys = NewKeyMap(opts.VimBindings)
	}
	c.opts = opts
}

// SetPageSize updates the page step, typically from the viewport height.
func (c *Command) SetPageSize(n int) {
	if n > 0 {
		c.opts.PageSize = n
	}
}

// SetLayout installs the visual-order provider. Nil restores mount order.
func (c *Command) SetLayout(l Layout) { c.layout = l }

// SetScroller installs the scroll-into-view target.
func (c *Command) SetScroller(s Scroller) { c.scroll = s }

// SetProps applies host-controlled fields. Controlled values are mirrored
// into internal state without calling back.
func (c *Command) SetProps(p Props) {
	c.props = p
	if p.Value != nil {
		v := strings.TrimSpace(*p.Value)
		if c.store.setSelected(v) {
			events.Selection.Mirror(v)
			c.sched.schedule(SlotScroll, c.scrollSelectedIntoView)
		}
	}
	if p.Search != nil {
		c.applySearch(*p.Search)
	}
}

// Search returns the current search term.
func (c *Command) Search() string { return c.store.search }

// Value returns the selected value, empty when nothing is selected.
func (c *Command) Value() string { return c.store.selected }

// Filtered returns the last settled filter result.
func (c *Command) Filtered() Filtered { return c.store.filtered }

// Mounted reports whether the first settle has completed.
func (c *Command) Mounted() bool { return c.mounted }

// Snapshot returns a deep copy of the registry.
func (c *Command) Snapshot() Snapshot { return c.store.snapshot() }

// SetSearch is the input's writer. Controlled search terms are forwarded to
// OnSearchChange and otherwise left untouched.
func (c *Command) SetSearch(term string) {
	if term == c.store.search {
		return
	}
	if c.props.Search != nil {
		events.Selection.Forward("search", term)
		if c.props.OnSearchChange != nil {
			c.props.OnSearchChange(term)
		}
		return
	}
	c.applySearch(term)
	if c.props.OnSearchChange != nil {
		c.props.OnSearchChange(term)
	}
}

func (c *Command) applySearch(term string) {
	if !c.store.setSearch(term) {
		return
	}
	events.Filter.Search(c.id, term)
	c.sched.schedule(SlotSearchSelect, c.SelectFirst)
}

// SetValue selects value. Controlled values are forwarded to OnValueChange.
func (c *Command) SetValue(value string) {
	c.setSelected(value, false)
}

// setSelected is the single writer of the selected value. suppressScroll is
// used when the item is already where the user is pointing.
func (c *Command) setSelected(value string, suppressScroll bool) {
	if value == c.store.selected {
		return
	}
	if c.props.Value != nil {
		events.Selection.Forward("value", value)
		if c.props.OnValueChange != nil {
			c.props.OnValueChange(value)
		}
		return
	}
	if !suppressScroll {
		c.sched.schedule(SlotScroll, c.scrollSelectedIntoView)
	}
	c.store.setSelected(value)
	events.Selection.Change(c.id, value)
	if c.props.OnValueChange != nil {
		c.props.OnValueChange(value)
	}
}

// Settle flushes deferred work: items mounted since the last settle become
// interactive, the filter is recomputed if anything changed, then queued
// tasks run in slot order. Tasks that queue more work are drained in
// further passes, up to a fixed bound.
func (c *Command) Settle() {
	for pass := 0; pass < maxSettlePasses; pass++ {
		c.paint()
		if c.store.dirty {
			f := c.store.recompute(c.opts.Filter, c.opts.ShouldFilter)
			events.Filter.Recompute(c.id, c.store.search, f.Count, c.store.items.Len())
		}
		c.mounted = true
		if !c.sched.pending() {
			return
		}
		c.sched.drain()
	}
}

func (c *Command) paint() {
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		pair.Value.painted = true
	}
}

// EmptyVisible reports whether the empty state should render: the menu has
// mounted and nothing scores above zero.
func (c *Command) EmptyVisible() bool {
	return c.mounted && c.store.filtered.Count == 0
}

// SeparatorVisible reports whether a separator renders. Separators hide
// while searching unless alwaysRender is set.
func (c *Command) SeparatorVisible(alwaysRender bool) bool {
	return alwaysRender || c.store.filtered.Search == ""
}

func (c *Command) itemsInOrder() []*Item {
	if c.layout != nil {
		return c.layout.Items()
	}
	out := make([]*Item, 0, c.items.Len())
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Items returns the mounted items in mount order.
func (c *Command) Items() []*Item {
	out := make([]*Item, 0, c.items.Len())
	for pair := c.items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Groups returns the mounted groups in mount order.
func (c *Command) Groups() []*Group {
	out := make([]*Group, 0, c.groups.Len())
	for pair := c.groups.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

func newID() string {
	return uuid.NewString()
}

func sameFunc(a, b score.Func) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
