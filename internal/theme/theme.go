package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title           *lipgloss.Style
	Prompt          *lipgloss.Style
	Input           *lipgloss.Style
	Placeholder     *lipgloss.Style
	Cursor          *lipgloss.Style
	Heading         *lipgloss.Style
	Item            *lipgloss.Style
	ItemIndicator   *lipgloss.Style
	SelectedItem    *lipgloss.Style
	SelectedPointer *lipgloss.Style
	DisabledItem    *lipgloss.Style
	Match           *lipgloss.Style
	Hint            *lipgloss.Style
	Separator       *lipgloss.Style
	Empty           *lipgloss.Style
	Loading         *lipgloss.Style
	Footer          *lipgloss.Style
	Error           *lipgloss.Style
	Info            *lipgloss.Style
	Dialog          *lipgloss.Style
	Overlay         *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Input: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	Heading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	SelectedPointer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	DisabledItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
	),
	Match: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Underline(true),
	),
	Hint: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
	),
	Empty: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Dialog: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")).Padding(0, 1),
	),
	Overlay: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
