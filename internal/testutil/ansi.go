package testutil

import "github.com/charmbracelet/x/ansi"

// StripANSI removes terminal escape sequences so views can be compared as
// plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
