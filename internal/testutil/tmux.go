package testutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

var ErrPaneUnavailable = errors.New("tmux pane unavailable")

// TestSession is the session every Server starts with.
const TestSession = "cmdk-popup-test"

const crashMarker = "server exited unexpectedly"

// RequireTmux skips the calling test when tmux is not on PATH.
func RequireTmux(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("tmux")
	if err != nil {
		t.Skip("skipping: tmux binary not available")
	}
	return path
}

// Server is a throwaway tmux server listening on a private socket.
type Server struct {
	t      *testing.T
	Socket string
	Dir    string
}

// NewServer starts a detached server holding TestSession. When the test
// ends the server is killed, its verbose logs are checked for a crash and
// its directory is removed.
func NewServer(t *testing.T) *Server {
	t.Helper()
	RequireTmux(t)
	// Sockets live under /tmp; t.TempDir paths can exceed sun_path.
	dir, err := os.MkdirTemp("/tmp", "cmdk-popup-*")
	if err != nil {
		t.Fatalf("failed to create tmux temp dir: %v", err)
	}
	srv := &Server{t: t, Socket: filepath.Join(dir, "tmux.sock"), Dir: dir}
	start := srv.Command("-f", "/dev/null", "-vv", "new-session", "-d", "-s", TestSession, "sleep", "600")
	// -vv writes tmux-server-<pid>.log into the working directory.
	start.Dir = dir
	if err := start.Run(); err != nil {
		_ = os.RemoveAll(dir)
		t.Skipf("skipping: failed to start tmux server: %v", err)
	}
	t.Cleanup(func() {
		srv.kill()
		srv.checkLogs()
		_ = os.RemoveAll(dir)
	})
	if pid, err := srv.Output("display-message", "-p", "#{pid}"); err == nil && pid != "" {
		t.Logf("started tmux test server pid=%s socket=%s", pid, srv.Socket)
	}
	return srv
}

// Command builds a tmux invocation against the server. The caller's TMUX
// variables are replaced so nothing leaks to an outer session.
func (s *Server) Command(args ...string) *exec.Cmd {
	cmd := exec.Command("tmux", append([]string{"-S", s.Socket}, args...)...)
	cmd.Env = s.environ()
	return cmd
}

// Output runs a tmux command and returns its trimmed stdout.
func (s *Server) Output(args ...string) (string, error) {
	out, err := s.Command(args...).Output()
	return strings.TrimSpace(string(out)), err
}

// Capture returns the rendered contents of target, escapes included.
// ErrPaneUnavailable means the pane does not exist yet.
func (s *Server) Capture(target string) (string, error) {
	args := []string{"capture-pane", "-e", "-p"}
	if target != "" {
		args = append(args, "-t", target)
	}
	out, err := s.Command(args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", ErrPaneUnavailable
		}
		return "", fmt.Errorf("capture-pane failed: %w", err)
	}
	return string(out), nil
}

// WaitForText polls target until its plain-text capture contains want and
// returns that capture.
func (s *Server) WaitForText(ctx context.Context, target, want string) string {
	s.t.Helper()
	waiting := false
	for {
		select {
		case <-ctx.Done():
			s.t.Fatalf("timeout waiting for %q: %v", want, ctx.Err())
		case <-time.After(50 * time.Millisecond):
			out, err := s.Capture(target)
			if errors.Is(err, ErrPaneUnavailable) {
				if !waiting {
					s.t.Logf("waiting for pane %s to become available", target)
					waiting = true
				}
				continue
			}
			if err != nil {
				s.t.Fatalf("capture-pane error: %v", err)
			}
			if plain := StripANSI(out); strings.Contains(plain, want) {
				return plain
			}
		}
	}
}

func (s *Server) environ() []string {
	env := make([]string, 0, len(os.Environ())+2)
	for _, entry := range os.Environ() {
		if strings.HasPrefix(entry, "TMUX=") || strings.HasPrefix(entry, "TMUX_TMPDIR=") {
			continue
		}
		env = append(env, entry)
	}
	return append(env, "TMUX=", "TMUX_TMPDIR="+s.Dir)
}

// kill stops the server over a control-mode client, falling back to the
// kill-server command.
func (s *Server) kill() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	client, err := gotmux.NewTmuxWithOptions(s.Socket, gotmux.WithContext(ctx))
	if err == nil {
		err = client.KillServer()
		client.Close()
	}
	if err != nil {
		s.t.Logf("control-mode kill failed for %s: %v; using kill-server", s.Socket, err)
		_ = s.Command("kill-server").Run()
	}
}

func (s *Server) checkLogs() {
	logs, err := filepath.Glob(filepath.Join(s.Dir, "tmux-server-*.log"))
	if err != nil || len(logs) == 0 {
		return
	}
	for _, path := range logs {
		content, err := os.ReadFile(path)
		if err != nil {
			s.t.Errorf("failed to read tmux server log %s: %v", path, err)
			continue
		}
		if bytes.Contains(content, []byte(crashMarker)) {
			s.t.Errorf("tmux server reported unexpected exit; see %s", path)
		}
	}
}
