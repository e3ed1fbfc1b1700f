package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/cmdk-popup/internal/app"
	"github.com/atomicstack/cmdk-popup/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Streams) != 3 {
		t.Fatalf("expected 3 stream entries, got %d", len(info.Streams))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Streams[i].Name != name {
			t.Fatalf("expected stream %d name %q, got %q", i, name, info.Streams[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			Menus:      []string{"launcher.toml"},
			SocketPath: "socket-path",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Scorer:     "default",
			Poll:       time.Second,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"menu":   "[launcher.toml]",
			"socket": "socket-path",
			"width":  "80",
			"height": "24",
			"footer": "true",
		},
		Args: []string{"--menu", "launcher.toml", "--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["menu"] != "[launcher.toml]" {
		t.Fatalf("expected menu flag, got %v", flagsValue["menu"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["log-file"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["log-file"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	cfgValue, ok := payload["config"].(config.Config)
	if !ok {
		t.Fatalf("expected config in payload")
	}
	if diff := cmp.Diff(cfg.App, cfgValue.App); diff != "" {
		t.Fatalf("app config mismatch (-want +got):\n%s", diff)
	}
}

func writeMenu(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestValidateSubcommandReportsCounts(t *testing.T) {
	dir := t.TempDir()
	tomlPath := writeMenu(t, dir, "one.toml", `
[[items]]
label = "Home"

[[groups]]
heading = "Fruits"

[[groups.items]]
label = "Apple"

[[groups.items]]
label = "Banana"
`)
	yamlPath := writeMenu(t, dir, "two.yaml", `
items:
  - label: Settings
`)

	root := newRootCmd(nil, nil)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"validate", tomlPath, yamlPath})
	if err := root.Execute(); err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	want := tomlPath + ": 1 groups, 3 items\n" + yamlPath + ": 0 groups, 1 items\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestValidateMenusRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	err := validateMenus(context.Background(), new(bytes.Buffer), []string{filepath.Join(dir, "menu.json")})
	if !errors.Is(err, errConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	broken := writeMenu(t, dir, "broken.toml", "[[items]\n")
	if err := validateMenus(context.Background(), new(bytes.Buffer), []string{broken}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	root := newRootCmd(nil, nil)
	root.SetArgs([]string{"--scorer", "nope"})
	err := root.Execute()
	if !errors.Is(err, errConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unknown scorer") {
		t.Fatalf("expected scorer in message, got %v", err)
	}
}

func TestRootReadsEnvironment(t *testing.T) {
	root := newRootCmd(nil, []string{"CMDK_POPUP_WIDTH=-3"})
	root.SetArgs([]string{})
	err := root.Execute()
	if !errors.Is(err, errConfig) {
		t.Fatalf("expected width from environment to fail validation, got %v", err)
	}
}
