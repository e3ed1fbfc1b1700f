package tmux

import (
	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Session is a tmux session as offered by the palette.
type Session struct {
	Name     string
	Label    string
	Attached bool
	Current  bool
	Windows  int
}

// Window is a tmux window addressed as session:index.
type Window struct {
	ID      string
	Session string
	Index   int
	Name    string
	Active  bool
	Current bool
	Label   string
}

type SessionSnapshot struct {
	Sessions []Session
	Current  string
}

type WindowSnapshot struct {
	Windows   []Window
	CurrentID string
}

type tmuxClient interface {
	ListSessions() ([]*gotmux.Session, error)
	ListAllWindows() ([]*gotmux.Window, error)
	SwitchClient(*gotmux.SwitchClientOptions) error
	DisplayMessage(target, format string) (string, error)
	Close() error
}

var newTmux = func(socketPath string) (tmuxClient, error) {
	if socketPath != "" {
		return gotmux.NewTmux(socketPath)
	}
	return gotmux.DefaultTmux()
}
