package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atomicstack/cmdk-popup/internal/app"
	"github.com/atomicstack/cmdk-popup/internal/config"
	"github.com/atomicstack/cmdk-popup/internal/logging"
	"github.com/atomicstack/cmdk-popup/internal/logging/events"
	"github.com/atomicstack/cmdk-popup/internal/menu"
)

const (
	exitError     = 1
	exitConfig    = 2
	exitCancelled = 130
)

var errConfig = errors.New("configuration error")

func main() {
	root := newRootCmd(os.Args[1:], os.Environ())
	if err := root.Execute(); err != nil {
		switch {
		case errors.Is(err, app.ErrCancelled):
			os.Exit(exitCancelled)
		case errors.Is(err, errConfig):
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(exitConfig)
		}
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
}

func newRootCmd(argv, environ []string) *cobra.Command {
	root := &cobra.Command{
		Use:           "cmdk-popup",
		Short:         "Fuzzy command menu for the terminal and tmux popups",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	build := config.Bind(root.Flags(), environ)
	root.RunE = func(*cobra.Command, []string) error {
		runtimeCfg := build()
		runtimeCfg.Args = append([]string(nil), argv...)
		if err := config.Validate(runtimeCfg); err != nil {
			return fmt.Errorf("%w: %v", errConfig, err)
		}
		logging.Configure(runtimeCfg.Logging.FilePath)
		logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

		traceStartup(runtimeCfg)

		return app.Run(runtimeCfg.App)
	}
	root.AddCommand(newValidateCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Parse menu files and report their group and item counts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateMenus(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

// validateMenus loads every file concurrently and prints one summary line
// per file, in argument order.
func validateMenus(ctx context.Context, out io.Writer, paths []string) error {
	registry := menu.NewRegistry()
	for _, path := range paths {
		if _, err := menu.FormatFromPath(path); err != nil {
			return fmt.Errorf("%w: %v", errConfig, err)
		}
		registry.Add(menu.FileSource(path))
	}
	loaded, err := registry.LoadAll(ctx, menu.Context{})
	if err != nil {
		return err
	}
	for i, res := range loaded {
		groups, items := res.Menu.Count()
		fmt.Fprintf(out, "%s: %d groups, %d items\n", paths[i], groups, items)
	}
	return nil
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["log-file"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["logPath"] = logging.Path()
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected `json:"detected,omitempty"`
	Streams  []ttyStream  `json:"streams"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyStream struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	streams := []struct {
		name string
		file *os.File
	}{
		{"stdin", os.Stdin},
		{"stdout", os.Stdout},
		{"stderr", os.Stderr},
	}
	results := make([]ttyStream, 0, len(streams))
	var detected *ttyDetected
	for _, stream := range streams {
		entry := ttyStream{Name: stream.name}
		fd := int(stream.file.Fd())
		if term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: stream.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Streams: results}
}
