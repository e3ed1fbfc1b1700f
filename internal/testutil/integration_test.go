package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestPopupListsTmuxSessions(t *testing.T) {
	bin := BuildBinary(t)
	srv := NewServer(t)
	session := "palette"
	pane := session + ":0.0"
	scriptDir := t.TempDir()
	scriptPath := filepath.Join(scriptDir, "run.sh")
	logPath := filepath.Join(scriptDir, "popup.log")
	// new-session runs the script with the server's environment, not ours.
	script := launcherScript(bin, "--tmux", "--socket", srv.Socket, "--width", "80", "--height", "24", "--log-file", logPath)
	if err := os.WriteFile(scriptPath, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write launcher script: %v", err)
	}
	if err := srv.Command("new-session", "-d", "-x", "80", "-y", "24", "-s", session, scriptPath).Run(); err != nil {
		t.Fatalf("failed to launch binary: %v", err)
	}
	if err := srv.Command("has-session", "-t", session).Run(); err != nil {
		t.Skipf("skipping: unable to create tmux session: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	output := srv.WaitForText(ctx, pane, "Sessions")
	if !strings.Contains(output, TestSession) {
		t.Fatalf("expected %s in popup output:\n%s", TestSession, output)
	}

	_ = srv.Command("send-keys", "-t", pane, "Escape").Run()
	_ = srv.Command("kill-session", "-t", session).Run()
}

func TestLauncherScriptQuotesArguments(t *testing.T) {
	got := launcherScript("/tmp/my bin", "--log-file", "/tmp/it's.log")
	want := "#!/bin/sh\n'/tmp/my bin' '--log-file' '/tmp/it'\\''s.log'\nsleep 300\n"
	if got != want {
		t.Fatalf("unexpected script:\n got %q\nwant %q", got, want)
	}
}

// launcherScript runs argv and then keeps the pane open.
func launcherScript(argv ...string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return fmt.Sprintf("#!/bin/sh\n%s\nsleep 300\n", strings.Join(quoted, " "))
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
