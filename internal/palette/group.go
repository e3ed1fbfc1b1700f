package palette

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/atomicstack/cmdk-popup/internal/logging/events"
)

// GroupProps describe a named container of items.
type GroupProps struct {
	// Heading is the rendered title. It doubles as the value when Value is
	// empty.
	Heading  string
	Value    string
	Keywords []string
	// ForceMount keeps the group visible regardless of its members' scores
	// and is inherited by every member item.
	ForceMount bool
}

// Group is the handle returned by MountGroup.
type Group struct {
	cmd     *Command
	id      string
	props   GroupProps
	value   string
	items   *orderedmap.OrderedMap[string, *Item]
	mounted bool
}

// MountGroup registers an empty group.
func (c *Command) MountGroup(props GroupProps) *Group {
	g := &Group{
		cmd:     c,
		id:      newID(),
		props:   props,
		value:   groupValue(props),
		items:   orderedmap.New[string, *Item](),
		mounted: true,
	}
	c.groups.Set(g.id, g)
	c.store.registerGroup(g.id)
	c.store.registerGroupValue(g.id, g.value, props.Keywords)
	events.Registry.GroupMount(g.id, g.value)
	return g
}

func groupValue(p GroupProps) string {
	if v := strings.TrimSpace(p.Value); v != "" {
		return v
	}
	return strings.TrimSpace(p.Heading)
}

// MountItem registers an item as a member of g. Mounting into an unmounted
// group returns nil.
func (g *Group) MountItem(props ItemProps) *Item {
	if !g.mounted {
		return nil
	}
	return g.cmd.mountItem(g, props)
}

// Update replaces the group's heading and searchable value.
func (g *Group) Update(props GroupProps) {
	if !g.mounted {
		return
	}
	wasForced := g.props.ForceMount
	g.props = props
	g.value = groupValue(props)
	g.cmd.store.registerGroupValue(g.id, g.value, props.Keywords)
	if wasForced == props.ForceMount {
		return
	}
	for pair := g.items.Oldest(); pair != nil; pair = pair.Next() {
		it := pair.Value
		it.syncRegistration(wasForced || it.props.ForceMount)
	}
}

// Unmount removes the group, unmounting any members still attached first.
// It is safe to call more than once.
func (g *Group) Unmount() {
	if !g.mounted {
		return
	}
	for _, it := range g.Items() {
		it.Unmount()
	}
	g.mounted = false
	g.cmd.groups.Delete(g.id)
	g.cmd.store.deregisterGroup(g.id)
	events.Registry.GroupUnmount(g.id, g.value)
}

// ID is the unique identifier assigned at mount.
func (g *Group) ID() string { return g.id }

// HeadingID identifies the heading element for aria-labelledby.
func (g *Group) HeadingID() string { return g.id + "-heading" }

// Heading is the rendered title.
func (g *Group) Heading() string { return g.props.Heading }

// Value is the group's searchable value.
func (g *Group) Value() string { return g.value }

// Mounted reports whether the group is still registered.
func (g *Group) Mounted() bool { return g.mounted }

// Items returns the group's mounted items in mount order.
func (g *Group) Items() []*Item {
	out := make([]*Item, 0, g.items.Len())
	for pair := g.items.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Visible reports whether the group should render, as of the last settle.
func (g *Group) Visible() bool {
	if !g.mounted {
		return false
	}
	c := g.cmd
	return g.props.ForceMount || !c.opts.ShouldFilter || c.store.filtered.Search == "" || c.store.filtered.VisibleGroups[g.id]
}

// Hidden is the inverse of Visible for mounted groups. A hidden group keeps
// its place in the layout so forced members can still render.
func (g *Group) Hidden() bool {
	return g.mounted && !g.Visible()
}
