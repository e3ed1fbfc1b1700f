package palette

import (
	"sort"
	"strconv"
	"strings"
)

// Attrs are the accessibility attributes of one rendered element.
type Attrs map[string]string

// String renders attrs as sorted key="value" pairs.
func (a Attrs) String() string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.Quote(a[k]))
	}
	return strings.Join(parts, " ")
}

func boolAttr(v bool) string {
	return strconv.FormatBool(v)
}

// ListID identifies the listbox.
func (c *Command) ListID() string { return c.id + "-list" }

// LabelID identifies the hidden label.
func (c *Command) LabelID() string { return c.id + "-label" }

// InputID identifies the search input.
func (c *Command) InputID() string { return c.id + "-input" }

// RootAttrs describe the menu container.
func (c *Command) RootAttrs() Attrs {
	return Attrs{"aria-label": c.opts.Label, "tabindex": "-1"}
}

// LabelAttrs describe the hidden label bound to the input.
func (c *Command) LabelAttrs() Attrs {
	return Attrs{"id": c.LabelID(), "for": c.InputID()}
}

// InputAttrs describe the search input. aria-activedescendant points at the
// selected item while one is rendered.
func (c *Command) InputAttrs() Attrs {
	attrs := Attrs{
		"id":                c.InputID(),
		"role":              "combobox",
		"aria-autocomplete": "list",
		"aria-expanded":     "true",
		"aria-controls":     c.ListID(),
		"aria-labelledby":   c.LabelID(),
	}
	if it := c.SelectedItem(); it != nil {
		attrs["aria-activedescendant"] = it.id
	}
	return attrs
}

// ListAttrs describe the listbox. An empty label falls back to
// "Suggestions".
func (c *Command) ListAttrs(label string) Attrs {
	if strings.TrimSpace(label) == "" {
		label = defaultListLabel
	}
	return Attrs{"id": c.ListID(), "role": "listbox", "aria-label": label, "tabindex": "-1"}
}

// Attrs describe the item's option element.
func (it *Item) Attrs() Attrs {
	selected := it.Selected()
	disabled := it.props.Disabled
	return Attrs{
		"id":            it.id,
		"role":          "option",
		"aria-selected": boolAttr(selected),
		"data-selected": boolAttr(selected),
		"aria-disabled": boolAttr(disabled),
		"data-disabled": boolAttr(disabled),
		"data-value":    it.value,
	}
}

// Attrs describe the group's presentation wrapper.
func (g *Group) Attrs() Attrs {
	attrs := Attrs{"id": g.id, "role": "presentation", "data-value": g.value}
	if g.Hidden() {
		attrs["hidden"] = "true"
	}
	return attrs
}

// HeadingAttrs describe the group heading, hidden from assistive tech since
// the items container is labelled by it.
func (g *Group) HeadingAttrs() Attrs {
	return Attrs{"id": g.HeadingID(), "aria-hidden": "true"}
}

// ItemsAttrs describe the group's items container.
func (g *Group) ItemsAttrs() Attrs {
	attrs := Attrs{"role": "group"}
	if g.props.Heading != "" {
		attrs["aria-labelledby"] = g.HeadingID()
	}
	return attrs
}

// SeparatorAttrs describe a separator.
func SeparatorAttrs() Attrs {
	return Attrs{"role": "separator"}
}

// EmptyAttrs describe the empty state.
func EmptyAttrs() Attrs {
	return Attrs{"role": "presentation"}
}

// Loading is the progress slot shown while the host fetches items.
type Loading struct {
	Progress int
	Label    string
}

// Attrs describe the loading progressbar. An empty label falls back to
// "Loading...".
func (l Loading) Attrs() Attrs {
	label := l.Label
	if strings.TrimSpace(label) == "" {
		label = "Loading..."
	}
	progress := l.Progress
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return Attrs{
		"role":          "progressbar",
		"aria-valuenow": strconv.Itoa(progress),
		"aria-valuemin": "0",
		"aria-valuemax": "100",
		"aria-label":    label,
	}
}
