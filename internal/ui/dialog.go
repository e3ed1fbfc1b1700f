package ui

import "github.com/atomicstack/cmdk-popup/internal/logging/events"

// Dialog is the modal frame the palette is drawn in. Closing it ends the
// program; OnOpenChange observes every transition.
type Dialog struct {
	open         bool
	OnOpenChange func(open bool)
	// Width and Height size the frame; zero fills the terminal.
	Width  int
	Height int
}

// NewDialog returns a closed dialog; Init opens it.
func NewDialog() *Dialog {
	return &Dialog{}
}

// Open reports whether the dialog is showing.
func (d *Dialog) Open() bool {
	return d != nil && d.open
}

// SetOpen changes the open state. reason is recorded in the trace log.
func (d *Dialog) SetOpen(open bool, reason string) {
	if d == nil || d.open == open {
		return
	}
	d.open = open
	if open {
		events.Dialog.Open()
	} else {
		events.Dialog.Close(reason)
	}
	if d.OnOpenChange != nil {
		d.OnOpenChange(open)
	}
}
