package state

// Viewport is a window of Height lines over a list of rendered lines.
// A non-positive Height shows everything.
type Viewport struct {
	Offset int
	Height int
}

// Window returns the [start, end) range of lines currently shown.
func (v *Viewport) Window(total int) (int, int) {
	v.Clamp(total)
	if v.Height <= 0 || total <= v.Height {
		return 0, total
	}
	return v.Offset, v.Offset + v.Height
}

// Clamp keeps the offset within the scrollable range.
func (v *Viewport) Clamp(total int) {
	if v.Height <= 0 {
		v.Offset = 0
		return
	}
	maxOffset := max(total-v.Height, 0)
	v.Offset = min(max(v.Offset, 0), maxOffset)
}

// Reveal scrolls the minimum amount needed to show lines top through bottom.
// When the range is taller than the window the top line wins. It reports
// whether the offset changed.
func (v *Viewport) Reveal(top, bottom, total int) bool {
	old := v.Offset
	if v.Height <= 0 || total == 0 {
		v.Offset = 0
		return old != v.Offset
	}
	if bottom < top {
		bottom = top
	}
	if bottom >= v.Offset+v.Height {
		v.Offset = bottom - v.Height + 1
	}
	if top < v.Offset {
		v.Offset = top
	}
	v.Clamp(total)
	return old != v.Offset
}

// Scroll moves the window by delta lines.
func (v *Viewport) Scroll(delta, total int) bool {
	old := v.Offset
	v.Offset += delta
	v.Clamp(total)
	return old != v.Offset
}

// Contains reports whether line is inside the current window.
func (v *Viewport) Contains(line, total int) bool {
	start, end := v.Window(total)
	return line >= start && line < end
}
