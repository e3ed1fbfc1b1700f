package tmux

import (
	"fmt"
	"os"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// FetchSessions lists sessions, marking the one the popup was opened from.
func FetchSessions(socketPath string) (SessionSnapshot, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()

	sessions, err := client.ListSessions()
	if err != nil {
		return SessionSnapshot{}, fmt.Errorf("list sessions: %w", err)
	}
	current := currentSessionName(client)
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s == nil {
			continue
		}
		out = append(out, Session{
			Name:     s.Name,
			Label:    sessionLabel(s),
			Attached: s.Attached > 0,
			Current:  s.Name == current,
			Windows:  s.Windows,
		})
	}
	return SessionSnapshot{Sessions: out, Current: current}, nil
}

// FetchWindows lists every window across sessions.
func FetchWindows(socketPath string) (WindowSnapshot, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return WindowSnapshot{}, fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()

	windows, err := client.ListAllWindows()
	if err != nil {
		return WindowSnapshot{}, fmt.Errorf("list windows: %w", err)
	}
	current := currentSessionName(client)
	var snapshot WindowSnapshot
	for _, w := range windows {
		if w == nil {
			continue
		}
		session := firstSession(w)
		entry := Window{
			ID:      fmt.Sprintf("%s:%d", session, w.Index),
			Session: session,
			Index:   w.Index,
			Name:    w.Name,
			Active:  w.Active,
			Current: session == current && w.Active,
		}
		entry.Label = fmt.Sprintf("%s: %s", entry.ID, w.Name)
		if entry.Current {
			snapshot.CurrentID = entry.ID
		}
		snapshot.Windows = append(snapshot.Windows, entry)
	}
	return snapshot, nil
}

func sessionLabel(s *gotmux.Session) string {
	label := fmt.Sprintf("%s: %d windows", s.Name, s.Windows)
	if s.Attached > 0 {
		label += " (attached)"
	}
	return label
}

func firstSession(w *gotmux.Window) string {
	if len(w.ActiveSessionsList) > 0 {
		return w.ActiveSessionsList[0]
	}
	if len(w.LinkedSessionsList) > 0 {
		return w.LinkedSessionsList[0]
	}
	return strings.TrimSpace(w.Session)
}

func currentSessionName(client tmuxClient) string {
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	if target == "" {
		return ""
	}
	name, err := client.DisplayMessage(target, "#{session_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}
