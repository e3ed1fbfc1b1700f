package ui

import (
	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/cmdk-popup/internal/logging/events"
	"github.com/atomicstack/cmdk-popup/internal/menu"
	"github.com/atomicstack/cmdk-popup/internal/palette"
)

// itemKey identifies a menu item across reloads: its group key and value.
type itemKey struct {
	group string
	value string
}

// section is one rendered run of items; group is nil for ungrouped items.
type section struct {
	group *palette.Group
	items []*palette.Item
	keys  []itemKey
}

// reconciler keeps palette handles in step with the latest menu, mounting
// what is new, unmounting what disappeared and updating what changed. It
// also serves the palette's visual order.
type reconciler struct {
	cmd      *palette.Command
	onSelect func(itemKey)

	groups    map[string]*palette.Group
	groupDefs map[string]menu.Group
	items     map[itemKey]*palette.Item
	defs      map[itemKey]menu.Item
	sections  []section
}

func newReconciler(cmd *palette.Command, onSelect func(itemKey)) *reconciler {
	return &reconciler{
		cmd:       cmd,
		onSelect:  onSelect,
		groups:    make(map[string]*palette.Group),
		groupDefs: make(map[string]menu.Group),
		items:     make(map[itemKey]*palette.Item),
		defs:      make(map[itemKey]menu.Item),
	}
}

// Items implements palette.Layout.
func (r *reconciler) Items() []*palette.Item {
	var out []*palette.Item
	for _, s := range r.sections {
		out = append(out, s.items...)
	}
	return out
}

// def returns the menu item behind key.
func (r *reconciler) def(key itemKey) (menu.Item, bool) {
	item, ok := r.defs[key]
	return item, ok
}

// apply reconciles the palette against m. Duplicate values within one group
// keep the first occurrence.
func (r *reconciler) apply(m menu.Menu) {
	type wantGroup struct {
		def  menu.Group
		keys []itemKey
	}
	wantItems := make(map[itemKey]menu.Item)
	var loose []itemKey
	var groups []wantGroup
	wantGroups := make(map[string]bool)

	collect := func(group string, items []menu.Item) []itemKey {
		var keys []itemKey
		for _, it := range items {
			key := itemKey{group: group, value: it.Value()}
			if key.value == "" {
				continue
			}
			if _, dup := wantItems[key]; dup {
				continue
			}
			wantItems[key] = it
			keys = append(keys, key)
		}
		return keys
	}
	loose = collect("", m.Items)
	for _, g := range m.Groups {
		k := g.Key()
		if k == "" || wantGroups[k] {
			continue
		}
		wantGroups[k] = true
		groups = append(groups, wantGroup{def: g, keys: collect(k, g.Items)})
	}

	var mounted, unmounted, updated int
	for key, handle := range r.items {
		if _, ok := wantItems[key]; ok {
			continue
		}
		handle.Unmount()
		delete(r.items, key)
		delete(r.defs, key)
		unmounted++
	}
	for key, handle := range r.groups {
		if wantGroups[key] {
			continue
		}
		handle.Unmount()
		delete(r.groups, key)
		delete(r.groupDefs, key)
	}

	sync := func(g *palette.Group, keys []itemKey) []*palette.Item {
		handles := make([]*palette.Item, 0, len(keys))
		for _, key := range keys {
			def := wantItems[key]
			handle, ok := r.items[key]
			switch {
			case !ok:
				props := r.itemProps(key, def)
				if g != nil {
					handle = g.MountItem(props)
				} else {
					handle = r.cmd.MountItem(props)
				}
				r.items[key] = handle
				mounted++
			case !cmp.Equal(r.defs[key], def):
				handle.Update(r.itemProps(key, def))
				updated++
			}
			r.defs[key] = def
			handles = append(handles, handle)
		}
		return handles
	}

	sections := make([]section, 0, len(groups)+1)
	if len(loose) > 0 {
		sections = append(sections, section{items: sync(nil, loose), keys: loose})
	}
	for _, want := range groups {
		key := want.def.Key()
		handle, ok := r.groups[key]
		switch {
		case !ok:
			handle = r.cmd.MountGroup(groupProps(want.def))
			r.groups[key] = handle
		case !cmp.Equal(groupHeader(r.groupDefs[key]), groupHeader(want.def)):
			handle.Update(groupProps(want.def))
		}
		r.groupDefs[key] = want.def
		sections = append(sections, section{group: handle, items: sync(handle, want.keys), keys: want.keys})
	}
	r.sections = sections
	events.UI.Reconcile(mounted, unmounted, updated)
}

func (r *reconciler) itemProps(key itemKey, def menu.Item) palette.ItemProps {
	return palette.ItemProps{
		Value:      key.value,
		Text:       def.Label,
		Keywords:   def.Keywords,
		Disabled:   def.Disabled,
		ForceMount: def.Force,
		OnSelect: func(string) {
			if r.onSelect != nil {
				r.onSelect(key)
			}
		},
	}
}

func groupProps(g menu.Group) palette.GroupProps {
	return palette.GroupProps{
		Heading:    g.Heading,
		Value:      g.Value,
		Keywords:   g.Keywords,
		ForceMount: g.Force,
	}
}

// groupHeader drops the items so that membership changes alone do not
// count as a group update.
func groupHeader(g menu.Group) menu.Group {
	g.Items = nil
	return g
}
