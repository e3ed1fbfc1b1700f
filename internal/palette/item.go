package palette

import (
	"strings"

	"github.com/atomicstack/cmdk-popup/internal/logging/events"
)

// ItemProps describe a selectable entry.
type ItemProps struct {
	// Value identifies the item for selection. Empty falls back to Text.
	Value string
	// Text is the rendered label.
	Text     string
	Keywords []string
	Disabled bool
	// ForceMount keeps the item rendered regardless of the filter. Forced
	// items are not registered for scoring and do not count as matches.
	ForceMount bool
	OnSelect   func(value string)
}

// Item is the handle returned by MountItem. Its zero value is not usable.
type Item struct {
	cmd     *Command
	group   *Group
	id      string
	props   ItemProps
	value   string
	painted bool
	mounted bool
}

// MountItem registers an ungrouped item.
func (c *Command) MountItem(props ItemProps) *Item {
	return c.mountItem(nil, props)
}

func (c *Command) mountItem(g *Group, props ItemProps) *Item {
	it := &Item{
		cmd:     c,
		group:   g,
		id:      newID(),
		props:   props,
		value:   itemValue(props),
		mounted: true,
	}
	c.items.Set(it.id, it)
	if g != nil {
		g.items.Set(it.id, it)
	}
	if !it.forced() {
		c.store.registerItemValue(it.id, it.value, props.Keywords)
		c.store.registerItem(it.id, it.groupID())
	}
	events.Registry.ItemMount(it.id, it.value, it.groupID())
	c.sched.schedule(SlotMountSelect, func() {
		if c.store.selected == "" {
			c.SelectFirst()
		}
	})
	return it
}

func itemValue(p ItemProps) string {
	if v := strings.TrimSpace(p.Value); v != "" {
		return v
	}
	return strings.TrimSpace(p.Text)
}

// Update replaces the item's props. Value and keyword changes are rescored at
// the next settle.
func (it *Item) Update(props ItemProps) {
	if !it.mounted {
		return
	}
	wasForced := it.forced()
	it.props = props
	it.value = itemValue(props)
	it.syncRegistration(wasForced)
}

// forced reports whether the item bypasses filtering, either on its own or
// through a force-mounted group.
func (it *Item) forced() bool {
	return it.props.ForceMount || (it.group != nil && it.group.props.ForceMount)
}

// syncRegistration keeps the store in line with the item's force state.
// Forced items are absent from the store; others carry current meta.
func (it *Item) syncRegistration(wasForced bool) {
	c := it.cmd
	switch forced := it.forced(); {
	case forced && !wasForced:
		c.store.deregisterItem(it.id, it.groupID())
	case !forced:
		c.store.registerItemValue(it.id, it.value, it.props.Keywords)
		if wasForced {
			c.store.registerItem(it.id, it.groupID())
		}
	}
}

// Unmount removes the item from every registry mapping. It is safe to call
// more than once. Removing the selected item queues a single reselection
// shared with any other removal in the same batch.
func (it *Item) Unmount() {
	if !it.mounted {
		return
	}
	c := it.cmd
	it.mounted = false
	wasSelected := c.store.selected != "" && c.store.selected == it.value
	c.items.Delete(it.id)
	if it.group != nil {
		it.group.items.Delete(it.id)
	}
	c.store.deregisterItem(it.id, it.groupID())
	events.Registry.ItemUnmount(it.id, it.value, wasSelected)
	if wasSelected {
		c.reselect = true
		c.sched.schedule(SlotReselect, func() {
			if c.reselect {
				c.reselect = false
				c.SelectFirst()
			}
		})
	}
}

func (it *Item) groupID() string {
	if it.group == nil {
		return ""
	}
	return it.group.id
}

// ID is the unique identifier assigned at mount.
func (it *Item) ID() string { return it.id }

// Value is the resolved selection value.
func (it *Item) Value() string { return it.value }

// Text is the rendered label.
func (it *Item) Text() string { return it.props.Text }

// Props returns the props the item was last mounted or updated with.
func (it *Item) Props() ItemProps { return it.props }

// Group returns the owning group, or nil.
func (it *Item) Group() *Group { return it.group }

// Mounted reports whether the item is still registered.
func (it *Item) Mounted() bool { return it.mounted }

// Disabled reports whether the item is excluded from navigation.
func (it *Item) Disabled() bool { return it.props.Disabled }

// Score returns the item's last settled score.
func (it *Item) Score() float64 {
	if it.forced() || !it.cmd.opts.ShouldFilter || it.cmd.store.filtered.Search == "" {
		return 1
	}
	return it.cmd.store.score(it.id)
}

// Visible reports whether the item should render, as of the last settle.
func (it *Item) Visible() bool {
	if !it.mounted {
		return false
	}
	c := it.cmd
	return it.forced() || !c.opts.ShouldFilter || c.store.filtered.Search == "" || c.store.score(it.id) > 0
}

// Selected reports whether the item carries the selected value.
func (it *Item) Selected() bool {
	return it.mounted && it.value != "" && it.value == it.cmd.store.selected
}

// Interactive reports whether the item has rendered and can be activated.
func (it *Item) Interactive() bool {
	return it.mounted && it.painted && !it.props.Disabled
}

// PointerMove selects the item when the pointer passes over it, without
// scrolling.
func (it *Item) PointerMove() {
	if !it.mounted || it.props.Disabled || it.cmd.opts.DisablePointerSelection {
		return
	}
	it.cmd.setSelected(it.value, true)
}

// Click selects and activates the item. It reports whether activation
// happened; items that have not rendered yet or are disabled ignore it.
func (it *Item) Click() bool {
	return it.activate()
}

func (it *Item) activate() bool {
	if !it.Interactive() {
		return false
	}
	it.cmd.setSelected(it.value, true)
	events.Registry.ItemSelect(it.id, it.value)
	if it.props.OnSelect != nil {
		it.props.OnSelect(it.value)
	}
	return true
}
