package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const (
	gap  = "  "
	tail = "…"
)

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured in terminal cells.
func Format(rows [][]string, alignments []Alignment) []string {
	return render(rows, alignments, columnWidths(rows))
}

// Fit is Format constrained to width cells. The first column shrinks to make
// room and its cells are truncated with an ellipsis; other columns keep
// their natural width. A non-positive width disables the constraint.
func Fit(rows [][]string, alignments []Alignment, width int) []string {
	widths := columnWidths(rows)
	if width <= 0 || len(widths) == 0 {
		return render(rows, alignments, widths)
	}
	total := 0
	for _, w := range widths {
		total += w
	}
	total += len(gap) * (len(widths) - 1)
	if over := total - width; over > 0 {
		widths[0] = max(widths[0]-over, 1)
	}
	return render(rows, alignments, widths)
}

func columnWidths(rows [][]string) []int {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	widths := make([]int, cols)
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func render(rows [][]string, alignments []Alignment, widths []int) []string {
	if len(rows) == 0 {
		return nil
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString(gap)
			}
			if runewidth.StringWidth(cell) > widths[c] {
				cell = truncate.StringWithTail(cell, uint(widths[c]), tail)
			}
			pad := widths[c] - runewidth.StringWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(row)-1 {
					b.WriteString(strings.Repeat(" ", max(pad, 0)))
				}
			}
		}
		out[i] = b.String()
	}
	return out
}
