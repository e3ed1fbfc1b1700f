package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/atomicstack/cmdk-popup/internal/backend"
	"github.com/atomicstack/cmdk-popup/internal/logging/events"
	"github.com/atomicstack/cmdk-popup/internal/menu"
	"github.com/atomicstack/cmdk-popup/internal/palette"
	"github.com/atomicstack/cmdk-popup/internal/score"
	"github.com/atomicstack/cmdk-popup/internal/tmux"
	"github.com/atomicstack/cmdk-popup/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Menus          []string
	Stdin          bool
	Tmux           bool
	SocketPath     string
	Label          string
	Placeholder    string
	Filter         bool
	Scorer         string
	DefaultValue   string
	Search         string
	Loop           bool
	DisablePointer bool
	VimBindings    bool
	Dialog         bool
	Width          int
	Height         int
	ShowFooter     bool
	Poll           time.Duration
	Print          bool
}

// ErrCancelled is returned when the menu is dismissed without a choice.
var ErrCancelled = errors.New("cancelled")

// ErrNoSource is returned when no menu source was requested and none could
// be detected.
var ErrNoSource = errors.New("no menu source: pass --menu, --stdin or --tmux")

const stdinSourceName = "stdin"

var (
	isTerminalFn  = term.IsTerminal
	resolveSocket = tmux.ResolveSocketPath
	currentClient = tmux.CurrentClientID
	runProgramFn  = func(p *tea.Program) (tea.Model, error) { return p.Run() }
)

// Run bootstraps and executes the Bubble Tea program. The chosen item's
// output is written to stdout.
func Run(cfg Config) error {
	cfg = detectSources(cfg, os.Getenv("TMUX"))
	registry, err := buildRegistry(cfg, os.Stdin)
	if err != nil {
		return err
	}
	menuCtx, err := menuContext(cfg)
	if err != nil {
		return err
	}
	opts, err := paletteOptions(cfg)
	if err != nil {
		return err
	}

	var watcher *backend.Watcher
	if live := registry.Live(); cfg.Poll > 0 && len(live) > 0 {
		watcher = backend.NewWatcher(live, menuCtx, cfg.Poll)
		defer watcher.Stop()
	}

	uiCfg := ui.Config{
		Options:     opts,
		Placeholder: cfg.Placeholder,
		Search:      cfg.Search,
		Sources:     registry.Sources(),
		Context:     menuCtx,
		Watcher:     watcher,
		Width:       cfg.Width,
		Height:      cfg.Height,
		ShowFooter:  cfg.ShowFooter,
		Dialog:      cfg.Dialog,
	}
	if cfg.Print {
		uiCfg.Override = menu.PrintAction
	}
	model := ui.NewModel(uiCfg)

	program := tea.NewProgram(model, programOptions(cfg)...)
	final, err := runProgramFn(program)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	if err != nil {
		return err
	}
	return finish(final, os.Stdout)
}

// detectSources falls back to stdin when it is piped, and to tmux when the
// process runs inside a tmux client.
func detectSources(cfg Config, tmuxEnv string) Config {
	if len(cfg.Menus) > 0 || cfg.Stdin || cfg.Tmux {
		return cfg
	}
	switch {
	case !isTerminalFn(int(os.Stdin.Fd())):
		cfg.Stdin = true
	case tmuxEnv != "":
		cfg.Tmux = true
	}
	return cfg
}

func buildRegistry(cfg Config, stdin io.Reader) (*menu.Registry, error) {
	registry := menu.NewRegistry()
	for _, path := range cfg.Menus {
		registry.Add(menu.FileSource(path))
	}
	if cfg.Stdin {
		src, err := menu.ReaderSource(stdinSourceName, stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		registry.Add(src)
	}
	if cfg.Tmux {
		registry.Add(menu.TmuxSource())
	}
	if len(registry.Sources()) == 0 {
		return nil, ErrNoSource
	}
	return registry, nil
}

func menuContext(cfg Config) (menu.Context, error) {
	if !cfg.Tmux {
		return menu.Context{}, nil
	}
	socketPath, err := resolveSocket(cfg.SocketPath)
	if err != nil {
		return menu.Context{}, fmt.Errorf("resolve socket path: %w", err)
	}
	return menu.Context{SocketPath: socketPath, ClientID: currentClient(socketPath)}, nil
}

func paletteOptions(cfg Config) (palette.Options, error) {
	opts := palette.DefaultOptions()
	scorer, err := score.Lookup(cfg.Scorer)
	if err != nil {
		return opts, err
	}
	opts.Filter = scorer
	opts.ShouldFilter = cfg.Filter
	opts.DefaultValue = cfg.DefaultValue
	opts.Loop = cfg.Loop
	opts.DisablePointerSelection = cfg.DisablePointer
	opts.VimBindings = cfg.VimBindings
	if cfg.Label != "" {
		opts.Label = cfg.Label
	}
	return opts, nil
}

func programOptions(cfg Config) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.DisablePointer {
		opts = append(opts, tea.WithMouseCellMotion())
	} else {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	if cfg.Stdin {
		opts = append(opts, tea.WithInputTTY())
	}
	if !isTerminalFn(int(os.Stdout.Fd())) {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}
	return opts
}

// finish reports the outcome held by the final model.
func finish(final tea.Model, out io.Writer) error {
	model, ok := final.(*ui.Model)
	if !ok {
		return fmt.Errorf("unexpected model type %T", final)
	}
	events.App.Exit(model.Output(), model.Cancelled())
	if model.Cancelled() {
		return ErrCancelled
	}
	if output := model.Output(); output != "" {
		if _, err := fmt.Fprintln(out, output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
