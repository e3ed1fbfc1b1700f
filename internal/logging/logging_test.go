package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func useTempLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "cmdk.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})
	return path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("read log: %v", err)
	}
	return string(data)
}

func TestConfigureCreatesDirectories(t *testing.T) {
	path := useTempLog(t)
	if Path() != path {
		t.Fatalf("expected path %q, got %q", path, Path())
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		t.Fatalf("expected log directory to exist: %v", err)
	}
	Configure("   ")
	if Path() != defaultLogFile {
		t.Fatalf("expected default path, got %q", Path())
	}
}

func TestTraceDisabledWritesNothing(t *testing.T) {
	path := useTempLog(t)
	Trace("palette.search", map[string]string{"search": "ap"})
	if got := readLog(t, path); got != "" {
		t.Fatalf("expected empty log, got %q", got)
	}
}

func TestTraceWritesJSONLines(t *testing.T) {
	path := useTempLog(t)
	SetTraceEnabled(true)
	Trace("palette.search", map[string]string{"search": "ap"})
	Trace("app.exit", nil)

	lines := strings.Split(strings.TrimSpace(readLog(t, path)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 trace lines, got %d", len(lines))
	}
	var entry struct {
		Event   string            `json:"event"`
		Payload map[string]string `json:"payload"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode trace line: %v", err)
	}
	if entry.Event != "palette.search" || entry.Payload["search"] != "ap" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if strings.Contains(lines[1], "payload") {
		t.Fatalf("expected payload to be omitted, got %s", lines[1])
	}
}

func TestErrorAppends(t *testing.T) {
	path := useTempLog(t)
	Error(nil)
	Error(errors.New("source: boom"))
	Error(errors.New("second"))

	got := readLog(t, path)
	if strings.Count(got, "\n") != 2 {
		t.Fatalf("expected 2 log lines, got %q", got)
	}
	if !strings.Contains(got, "source: boom") {
		t.Fatalf("expected error text in log, got %q", got)
	}
}
