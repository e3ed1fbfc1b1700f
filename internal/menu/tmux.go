package menu

import (
	"context"
	"fmt"

	"github.com/atomicstack/cmdk-popup/internal/tmux"
)

var (
	fetchSessionsFn = tmux.FetchSessions
	fetchWindowsFn  = tmux.FetchWindows
)

// TmuxSource lists sessions and windows as two groups whose items switch the
// client when chosen.
func TmuxSource() Source {
	return Source{Name: "tmux", Load: loadTmuxMenu, Live: true}
}

func loadTmuxMenu(_ context.Context, mc Context) (Menu, error) {
	sessions, err := fetchSessionsFn(mc.SocketPath)
	if err != nil {
		return Menu{}, err
	}
	windows, err := fetchWindowsFn(mc.SocketPath)
	if err != nil {
		return Menu{}, err
	}
	return Menu{
		Title:  "tmux",
		Groups: []Group{sessionGroup(sessions), windowGroup(windows)},
	}, nil
}

func sessionGroup(snap tmux.SessionSnapshot) Group {
	g := Group{Heading: "Sessions", Keywords: []string{"session"}}
	for _, s := range snap.Sessions {
		hint := fmt.Sprintf("%d windows", s.Windows)
		switch {
		case s.Current:
			hint = "current"
		case s.Attached:
			hint = "attached"
		}
		g.Items = append(g.Items, Item{
			ID:       s.Name,
			Label:    s.Name,
			Hint:     hint,
			Keywords: []string{s.Label},
			Action:   ActionTmuxSwitch,
		})
	}
	return g
}

func windowGroup(snap tmux.WindowSnapshot) Group {
	g := Group{Heading: "Windows", Keywords: []string{"window"}}
	for _, w := range snap.Windows {
		hint := w.ID
		if w.ID == snap.CurrentID {
			hint = w.ID + " current"
		}
		g.Items = append(g.Items, Item{
			ID:       w.ID,
			Label:    w.Name,
			Hint:     hint,
			Keywords: []string{w.Session},
			Action:   ActionTmuxSwitch,
		})
	}
	return g
}
