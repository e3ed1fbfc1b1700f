package ui

import (
	"strings"

	"github.com/atomicstack/cmdk-popup/internal/palette"
)

// Describe renders the accessibility tree of the current frame, one element
// per line, indented by depth. Screen readers and tests consume it in place
// of the styled view.
func (m *Model) Describe() string {
	var b strings.Builder
	write := func(depth int, tag string, attrs palette.Attrs) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(tag)
		if s := attrs.String(); s != "" {
			b.WriteByte(' ')
			b.WriteString(s)
		}
		b.WriteByte('\n')
	}

	depth := 0
	if m.dialog.Open() {
		write(depth, "dialog", palette.Attrs{"role": "dialog", "aria-modal": "true", "aria-label": m.cmd.Options().Label})
		depth++
	}
	write(depth, "root", m.cmd.RootAttrs())
	depth++
	write(depth, "label", m.cmd.LabelAttrs())
	write(depth, "input", m.cmd.InputAttrs())
	write(depth, "list", m.cmd.ListAttrs(""))
	depth++
	if m.Loading() {
		write(depth, "loading", m.loading.Attrs())
	}
	rendered := make(map[*palette.Group]bool)
	for _, ln := range m.list.lines() {
		if ln.kind == lineSeparator {
			write(depth, "separator", palette.SeparatorAttrs())
		}
		if ln.kind != lineItem {
			continue
		}
		if ln.group == nil {
			write(depth, "option", ln.item.Attrs())
			continue
		}
		if !rendered[ln.group] {
			rendered[ln.group] = true
			write(depth, "group", ln.group.Attrs())
			if ln.group.Heading() != "" {
				write(depth+1, "heading", ln.group.HeadingAttrs())
			}
			write(depth+1, "items", ln.group.ItemsAttrs())
		}
		write(depth+2, "option", ln.item.Attrs())
	}
	if !m.Loading() && m.cmd.EmptyVisible() {
		write(depth, "empty", palette.EmptyAttrs())
	}
	return b.String()
}
