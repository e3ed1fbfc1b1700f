package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/cmdk-popup/internal/format/table"
	"github.com/atomicstack/cmdk-popup/internal/score"
)

const (
	pointerMark     = "› "
	pointerBlank    = "  "
	fallbackWidth   = 24
	dialogChromeX   = 4 // border and horizontal padding
	dialogChromeY   = 2
	inputChromeRows = 2 // input line and divider
)

// View implements tea.Model.
func (m *Model) View() string {
	m.syncViewport()
	width := m.contentWidth()
	lines := make([]string, 0, 16)
	if m.title != "" {
		lines = append(lines, render(styles.Title, clip(m.title, width)))
	}
	lines = append(lines, m.input.View())
	lines = append(lines, render(styles.Separator, strings.Repeat("─", ruleWidth(width))))
	if m.Loading() {
		lines = append(lines, render(styles.Loading, fmt.Sprintf("%s %d%%", m.loading.Label, m.loading.Progress)))
	}
	lines = append(lines, m.listLines(width)...)
	if !m.Loading() && m.cmd.EmptyVisible() {
		lines = append(lines, render(styles.Empty, defaultEmptyText))
	}
	if status, style := m.status(); status != "" {
		lines = append(lines, render(style, clip(status, width)))
	}
	if m.showFooter {
		lines = append(lines, render(styles.Footer, m.help.ShortHelpView(m.cmd.KeyMap().ShortHelp())))
	}
	body := strings.Join(lines, "\n")
	if m.dialog.Open() && styles.Dialog != nil {
		frame := *styles.Dialog
		if w := m.frameWidth(); w > 0 {
			frame = frame.Width(w - 2)
		}
		body = frame.Render(body)
	}
	return body
}

// listLines renders the rows inside the viewport window.
func (m *Model) listLines(width int) []string {
	all := m.list.lines()
	start, end := m.list.viewport.Window(len(all))
	window := all[start:end]

	rowWidth := 0
	if width > 0 {
		rowWidth = max(width-len(pointerBlank), 1)
	}
	var cells [][]string
	for _, ln := range window {
		if ln.kind == lineItem {
			cells = append(cells, []string{ln.item.Text(), ln.def.Hint})
		}
	}
	formatted := table.Fit(cells, []table.Alignment{table.AlignLeft, table.AlignRight}, rowWidth)

	search := m.cmd.Filtered().Search
	out := make([]string, 0, len(window))
	row := 0
	for _, ln := range window {
		switch ln.kind {
		case lineSeparator:
			out = append(out, render(styles.Separator, strings.Repeat("─", ruleWidth(width))))
		case lineHeading:
			out = append(out, render(styles.Heading, clip(ln.group.Heading(), width)))
		case lineItem:
			text := formatted[row]
			row++
			out = append(out, m.renderItem(ln, text, search))
		}
	}
	return out
}

func (m *Model) renderItem(ln line, text, search string) string {
	base := styles.Item
	pointer, pointerStyle := pointerBlank, styles.ItemIndicator
	switch {
	case ln.item.Disabled():
		base = styles.DisabledItem
	case ln.item.Selected():
		base = styles.SelectedItem
		pointer, pointerStyle = pointerMark, styles.SelectedPointer
	}
	return render(pointerStyle, pointer) + highlight(text, ln.item.Text(), search, base)
}

// highlight styles text with base and marks the characters of label that
// matched search. text is label after column formatting, so only the
// prefix the two share is eligible.
func highlight(text, label, search string, base *lipgloss.Style) string {
	marks := score.Highlights(label, search)
	if len(marks) == 0 || styles.Match == nil {
		return render(base, text)
	}
	matched := make(map[int]bool, len(marks))
	for _, i := range marks {
		matched[i] = true
	}
	limit := commonPrefix(text, label)
	match := *styles.Match
	if base != nil {
		match = match.Inherit(*base)
	}
	var b, run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			b.WriteString(match.Render(run.String()))
		} else {
			b.WriteString(render(base, run.String()))
		}
		run.Reset()
	}
	for i, r := range text {
		hit := i < limit && matched[i]
		if hit != runMatched {
			flush()
			runMatched = hit
		}
		run.WriteRune(r)
	}
	flush()
	return b.String()
}

func commonPrefix(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func (m *Model) status() (string, *lipgloss.Style) {
	if m.errMsg != "" {
		return m.errMsg, styles.Error
	}
	if m.infoMsg != "" {
		return m.infoMsg, styles.Info
	}
	return "", nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	if it := m.cmd.SelectedItem(); it != nil {
		m.list.ScrollIntoView(it, false)
	}
	return nil
}

// syncViewport sizes the list window and search input to the terminal.
func (m *Model) syncViewport() {
	m.list.viewport.Height = m.listHeight()
	m.list.viewport.Clamp(len(m.list.lines()))
	if w := m.contentWidth(); w > 0 {
		m.input.Width = max(w-len([]rune(m.input.Prompt))-1, 1)
	}
	if page := m.list.viewport.Height; page > 0 {
		m.cmd.SetPageSize(page)
	}
}

func (m *Model) frameWidth() int {
	if m.dialog != nil && m.dialog.Width > 0 {
		return m.dialog.Width
	}
	return m.width
}

func (m *Model) frameHeight() int {
	if m.dialog != nil && m.dialog.Height > 0 {
		return m.dialog.Height
	}
	return m.height
}

func (m *Model) contentWidth() int {
	w := m.frameWidth()
	if w <= 0 {
		return 0
	}
	if m.dialog.Open() {
		w -= dialogChromeX
	}
	return max(w, 1)
}

// listHeight is the number of rows left for the list once every other line
// is accounted for. Zero means unbounded.
func (m *Model) listHeight() int {
	h := m.frameHeight()
	if h <= 0 {
		return 0
	}
	return max(h-m.chromeAbove()-m.chromeBelow(), 1)
}

func (m *Model) chromeAbove() int {
	used := inputChromeRows
	if m.dialog.Open() {
		used++
	}
	if m.title != "" {
		used++
	}
	if m.Loading() {
		used++
	}
	return used
}

func (m *Model) chromeBelow() int {
	used := 0
	if m.dialog.Open() {
		used++
	}
	if status, _ := m.status(); status != "" {
		used++
	}
	if m.showFooter {
		used++
	}
	if !m.Loading() && m.cmd.EmptyVisible() {
		used++
	}
	return used
}

// listTop is the screen row of the first list line.
func (m *Model) listTop() int {
	return m.chromeAbove()
}

func ruleWidth(width int) int {
	if width <= 0 {
		return fallbackWidth
	}
	return width
}

func clip(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}
