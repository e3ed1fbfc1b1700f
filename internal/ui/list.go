package ui

import (
	"github.com/atomicstack/cmdk-popup/internal/logging/events"
	"github.com/atomicstack/cmdk-popup/internal/menu"
	"github.com/atomicstack/cmdk-popup/internal/palette"
	uistate "github.com/atomicstack/cmdk-popup/internal/ui/state"
)

type lineKind int

const (
	lineItem lineKind = iota
	lineHeading
	lineSeparator
)

// line is one rendered row of the list.
type line struct {
	kind  lineKind
	item  *palette.Item
	group *palette.Group
	def   menu.Item
}

// list turns the reconciled sections into rendered rows and owns the
// viewport over them.
type list struct {
	cmd      *palette.Command
	rec      *reconciler
	viewport uistate.Viewport
	// resize recomputes the viewport height from the current chrome.
	resize func()
}

func newList(cmd *palette.Command, rec *reconciler) *list {
	return &list{cmd: cmd, rec: rec}
}

// lines returns the rows as of the last settle. Groups without a rendered
// item are skipped; a hidden group still renders its forced items but not
// its heading.
func (l *list) lines() []line {
	var out []line
	for _, s := range l.rec.sections {
		rows := make([]line, 0, len(s.items))
		for i, it := range s.items {
			if !it.Visible() {
				continue
			}
			def, _ := l.rec.def(s.keys[i])
			rows = append(rows, line{kind: lineItem, item: it, group: s.group, def: def})
		}
		if len(rows) == 0 {
			continue
		}
		if s.group != nil {
			if len(out) > 0 && l.cmd.SeparatorVisible(false) {
				out = append(out, line{kind: lineSeparator})
			}
			if s.group.Visible() && s.group.Heading() != "" {
				out = append(out, line{kind: lineHeading, group: s.group})
			}
		}
		out = append(out, rows...)
	}
	return out
}

// ScrollIntoView implements palette.Scroller.
// The viewport is resized first so the reveal uses the settled chrome.
func (l *list) ScrollIntoView(item *palette.Item, heading bool) {
	if l.resize != nil {
		l.resize()
	}
	lines := l.lines()
	idx := -1
	for i, ln := range lines {
		if ln.kind == lineItem && ln.item == item {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	top := idx
	if heading && idx > 0 && lines[idx-1].kind == lineHeading {
		top = idx - 1
	}
	l.viewport.Reveal(top, idx, len(lines))
	events.UI.MenuCursor(item.Value(), l.viewport.Offset)
}

// itemAt returns the item drawn on the given visible row, if any.
func (l *list) itemAt(row int) *palette.Item {
	lines := l.lines()
	start, end := l.viewport.Window(len(lines))
	idx := start + row
	if row < 0 || idx >= end {
		return nil
	}
	if lines[idx].kind != lineItem {
		return nil
	}
	return lines[idx].item
}
