package palette

import "github.com/atomicstack/cmdk-popup/internal/logging/events"

// Edge selects the first or last item for MoveToEdge.
type Edge int

const (
	First Edge = iota
	Last
)

func (e Edge) String() string {
	if e == Last {
		return "last"
	}
	return "first"
}

// ValidItems returns the visible, enabled items in layout order.
func (c *Command) ValidItems() []*Item {
	all := c.itemsInOrder()
	out := make([]*Item, 0, len(all))
	for _, it := range all {
		if it != nil && it.Visible() && !it.Disabled() {
			out = append(out, it)
		}
	}
	return out
}

// SelectedItem returns the first item in layout order carrying the selected
// value, or nil.
func (c *Command) SelectedItem() *Item {
	if c.store.selected == "" {
		return nil
	}
	for _, it := range c.itemsInOrder() {
		if it != nil && it.Visible() && it.Selected() {
			return it
		}
	}
	return nil
}

func indexOf(items []*Item, target *Item) int {
	if target == nil {
		return -1
	}
	for i, it := range items {
		if it == target {
			return i
		}
	}
	return -1
}

// SelectFirst selects the first valid item, clearing the selection when
// there is none.
func (c *Command) SelectFirst() {
	items := c.ValidItems()
	if len(items) == 0 {
		c.setSelected("", false)
		return
	}
	c.setSelected(items[0].value, false)
}

// MoveBy selects the item delta steps from the current selection. With wrap
// set, moving past either end continues from the other; otherwise the move
// is dropped at the edges. With nothing selected, +1 lands on the first item.
func (c *Command) MoveBy(delta int, wrap bool) {
	items := c.ValidItems()
	if len(items) == 0 || delta == 0 {
		return
	}
	index := indexOf(items, c.SelectedItem())
	next := index + delta
	switch {
	case wrap && next < 0:
		next = len(items) - 1
	case wrap && next >= len(items):
		next = 0
	case next < 0 || next >= len(items):
		return
	}
	events.Navigation.Move(c.id, delta, next)
	c.setSelected(items[next].value, false)
}

// MoveByPage jumps up to page items in the direction of delta, stopping at
// the ends without wrapping.
func (c *Command) MoveByPage(delta, page int) {
	items := c.ValidItems()
	if len(items) == 0 || delta == 0 {
		return
	}
	if page < 1 {
		page = 1
	}
	index := indexOf(items, c.SelectedItem())
	if index < 0 {
		index = 0
		if delta < 0 {
			index = len(items) - 1
		}
		c.setSelected(items[index].value, false)
		return
	}
	next := index + delta*page
	if next < 0 {
		next = 0
	}
	if next >= len(items) {
		next = len(items) - 1
	}
	events.Navigation.Move(c.id, delta*page, next)
	c.setSelected(items[next].value, false)
}

// MoveToEdge selects the first or last valid item.
func (c *Command) MoveToEdge(edge Edge) {
	items := c.ValidItems()
	if len(items) == 0 {
		return
	}
	target := items[0]
	if edge == Last {
		target = items[len(items)-1]
	}
	events.Navigation.Edge(c.id, edge.String())
	c.setSelected(target.value, false)
}

// MoveByGroup selects the first valid item of the nearest sibling group in
// the direction of delta that has one. Without a qualifying group it falls
// back to MoveBy.
func (c *Command) MoveByGroup(delta int) {
	if delta == 0 {
		return
	}
	selected := c.SelectedItem()
	if selected != nil && selected.group != nil {
		order := c.groupOrder()
		pos := -1
		for i, g := range order {
			if g == selected.group {
				pos = i
				break
			}
		}
		step := 1
		if delta < 0 {
			step = -1
		}
		for i := pos + step; pos >= 0 && i >= 0 && i < len(order); i += step {
			if first := c.firstValidIn(order[i]); first != nil {
				events.Navigation.Group(c.id, order[i].id, first.value)
				c.setSelected(first.value, false)
				return
			}
		}
	}
	c.MoveBy(delta, c.opts.Loop)
}

// SelectAtIndex selects the nth valid item. Out of range indexes are ignored.
func (c *Command) SelectAtIndex(n int) {
	items := c.ValidItems()
	if n < 0 || n >= len(items) {
		return
	}
	c.setSelected(items[n].value, false)
}

// groupOrder derives sibling group order from the first appearance of each
// group's items in the layout.
func (c *Command) groupOrder() []*Group {
	seen := make(map[*Group]bool)
	var order []*Group
	for _, it := range c.itemsInOrder() {
		if it == nil || it.group == nil || seen[it.group] {
			continue
		}
		seen[it.group] = true
		order = append(order, it.group)
	}
	return order
}

func (c *Command) firstValidIn(g *Group) *Item {
	for _, it := range c.itemsInOrder() {
		if it != nil && it.group == g && it.Visible() && !it.Disabled() {
			return it
		}
	}
	return nil
}

// Activate fires OnSelect for the selected item. It reports whether an item
// was activated.
func (c *Command) Activate() bool {
	it := c.SelectedItem()
	if it == nil {
		return false
	}
	return it.activate()
}

// RevealSelected queues a scroll to the selected item for the next settle.
// Hosts call it once items that arrived after mount have been rendered.
func (c *Command) RevealSelected() {
	c.sched.schedule(SlotMountScroll, c.scrollSelectedIntoView)
}

// scrollSelectedIntoView asks the scroller to reveal the selected item,
// flagging when it is the first rendered member of its group so the heading
// comes into view as well.
func (c *Command) scrollSelectedIntoView() {
	if c.scroll == nil {
		return
	}
	it := c.SelectedItem()
	if it == nil {
		return
	}
	heading := false
	if it.group != nil {
		for _, candidate := range c.itemsInOrder() {
			if candidate != nil && candidate.group == it.group && candidate.Visible() {
				heading = candidate == it
				break
			}
		}
	}
	c.scroll.ScrollIntoView(it, heading)
}
