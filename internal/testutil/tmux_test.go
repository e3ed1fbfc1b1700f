package testutil

import "testing"

func TestServerLifecycle(t *testing.T) {
	srv := NewServer(t)
	out, err := srv.Output("list-sessions", "-F", "#{session_name}")
	if err != nil {
		t.Skipf("skipping: list-sessions failed: %v", err)
	}
	if out != TestSession {
		t.Fatalf("expected %s, got %q", TestSession, out)
	}
}

func TestServerCaptureMissingPane(t *testing.T) {
	srv := NewServer(t)
	if _, err := srv.Capture("nope:9.9"); err == nil {
		t.Fatalf("expected an error capturing a missing pane")
	}
}

func TestStripANSI(t *testing.T) {
	if got := StripANSI("\x1b[1;31mred\x1b[0m plain"); got != "red plain" {
		t.Fatalf("expected escapes removed, got %q", got)
	}
}
