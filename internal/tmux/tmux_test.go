package tmux

import (
	"errors"
	"strings"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

func withStubTmux(t *testing.T, fn func(string) (tmuxClient, error)) {
	t.Helper()
	prev := newTmux
	newTmux = fn
	t.Cleanup(func() { newTmux = prev })
}

type fakeClient struct {
	sessions    []*gotmux.Session
	sessionsErr error
	windows     []*gotmux.Window
	windowsErr  error
	switchOpts  []*gotmux.SwitchClientOptions
	switchErr   error
	display     map[string]string
	closed      int
}

func (f *fakeClient) ListSessions() ([]*gotmux.Session, error) { return f.sessions, f.sessionsErr }

func (f *fakeClient) ListAllWindows() ([]*gotmux.Window, error) { return f.windows, f.windowsErr }

func (f *fakeClient) SwitchClient(opts *gotmux.SwitchClientOptions) error {
	f.switchOpts = append(f.switchOpts, opts)
	return f.switchErr
}

func (f *fakeClient) DisplayMessage(target, format string) (string, error) {
	if v, ok := f.display[format]; ok {
		return v, nil
	}
	return "", errors.New("no such format")
}

func (f *fakeClient) Close() error {
	f.closed++
	return nil
}

func TestFetchSessions(t *testing.T) {
	t.Setenv("TMUX_PANE", "%1")
	fake := &fakeClient{
		sessions: []*gotmux.Session{
			{Name: "work", Windows: 3, Attached: 1},
			nil,
			{Name: "play", Windows: 1},
		},
		display: map[string]string{"#{session_name}": "work\n"},
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	snap, err := FetchSessions("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Current != "work" {
		t.Fatalf("expected current session work, got %q", snap.Current)
	}
	if len(snap.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(snap.Sessions))
	}
	if !snap.Sessions[0].Current || !snap.Sessions[0].Attached {
		t.Fatalf("expected work to be current and attached: %#v", snap.Sessions[0])
	}
	if got := snap.Sessions[0].Label; got != "work: 3 windows (attached)" {
		t.Fatalf("unexpected label %q", got)
	}
	if snap.Sessions[1].Current {
		t.Fatalf("play should not be current")
	}
	if fake.closed != 1 {
		t.Fatalf("expected client to be closed once, got %d", fake.closed)
	}
}

func TestFetchSessionsError(t *testing.T) {
	withStubTmux(t, func(string) (tmuxClient, error) {
		return &fakeClient{sessionsErr: errors.New("boom")}, nil
	})
	if _, err := FetchSessions(""); err == nil {
		t.Fatalf("expected error")
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return nil, errors.New("no server") })
	if _, err := FetchSessions("sock"); err == nil {
		t.Fatalf("expected connect error")
	}
}

func TestFetchWindows(t *testing.T) {
	t.Setenv("TMUX_PANE", "%1")
	fake := &fakeClient{
		windows: []*gotmux.Window{
			{Id: "@1", Index: 0, Name: "editor", Active: true, ActiveSessionsList: []string{"work"}},
			{Id: "@2", Index: 1, Name: "logs", LinkedSessionsList: []string{"work"}},
			{Id: "@3", Index: 0, Name: "music", Active: true, Session: "play"},
		},
		display: map[string]string{"#{session_name}": "work"},
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	snap, err := FetchWindows("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(snap.Windows))
	}
	if snap.CurrentID != "work:0" {
		t.Fatalf("expected current work:0, got %q", snap.CurrentID)
	}
	if snap.Windows[1].ID != "work:1" || snap.Windows[1].Label != "work:1: logs" {
		t.Fatalf("unexpected window %#v", snap.Windows[1])
	}
	if snap.Windows[2].Session != "play" || snap.Windows[2].Current {
		t.Fatalf("unexpected window %#v", snap.Windows[2])
	}
}

func TestSwitchClient(t *testing.T) {
	fake := &fakeClient{}
	withStubTmux(t, func(string) (tmuxClient, error) { return fake, nil })

	if err := SwitchClient("", " /dev/ttys001 ", "work:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fake.switchOpts) != 1 {
		t.Fatalf("expected one switch call, got %d", len(fake.switchOpts))
	}
	opts := fake.switchOpts[0]
	if opts.TargetSession != "work:1" || opts.TargetClient != "/dev/ttys001" {
		t.Fatalf("unexpected options %#v", opts)
	}
	if err := SwitchClient("", "", "  "); err == nil {
		t.Fatalf("expected error for empty target")
	}
	fake.switchErr = errors.New("denied")
	if err := SwitchClient("", "", "work"); err == nil {
		t.Fatalf("expected switch error")
	}
}

func TestCurrentClientID(t *testing.T) {
	t.Setenv("TMUX_PANE", "%3")
	withStubTmux(t, func(string) (tmuxClient, error) {
		return &fakeClient{display: map[string]string{"#{client_name}": " /dev/pts/4 \n"}}, nil
	})
	if got := CurrentClientID(""); got != "/dev/pts/4" {
		t.Fatalf("expected /dev/pts/4, got %q", got)
	}
	withStubTmux(t, func(string) (tmuxClient, error) { return nil, errors.New("down") })
	if got := CurrentClientID(""); got != "" {
		t.Fatalf("expected empty id, got %q", got)
	}
}

func TestResolveSocketPath(t *testing.T) {
	t.Setenv("CMDK_POPUP_SOCKET", "")
	t.Setenv("TMUX", "/tmp/tmux-1000/work,123,0")
	if got, _ := ResolveSocketPath("/explicit"); got != "/explicit" {
		t.Fatalf("expected flag value to win, got %q", got)
	}
	if got, _ := ResolveSocketPath(""); got != "/tmp/tmux-1000/work" {
		t.Fatalf("expected socket from TMUX, got %q", got)
	}
	t.Setenv("CMDK_POPUP_SOCKET", "/env.sock")
	if got, _ := ResolveSocketPath(""); got != "/env.sock" {
		t.Fatalf("expected env socket, got %q", got)
	}
	t.Setenv("CMDK_POPUP_SOCKET", "")
	t.Setenv("TMUX", "")
	t.Setenv("TMUX_TMPDIR", "/run/tmux")
	got, err := ResolveSocketPath("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, "/run/tmux/tmux-") || !strings.HasSuffix(got, "/default") {
		t.Fatalf("unexpected default socket %q", got)
	}
}
