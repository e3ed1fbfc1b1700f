package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/atomicstack/cmdk-popup/internal/app"
	"github.com/atomicstack/cmdk-popup/internal/menu"
	"github.com/atomicstack/cmdk-popup/internal/score"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix       = "CMDK_POPUP_"
	defaultPoll     = 1500 * time.Millisecond
	defaultScorer   = "default"
	flagSetName     = "cmdk-popup"
	menuListEnvName = envPrefix + "MENU"
)

// Bind registers every flag on fs. Defaults come from CMDK_POPUP_* entries
// in environ, so flags override the environment. The returned function
// assembles the Config once fs has been parsed.
func Bind(fs *pflag.FlagSet, environ []string) func() Config {
	env := parseEnv(environ)

	menus := fs.StringArrayP("menu", "m", envOrList(env, menuListEnvName), "menu definition file (.toml, .yaml); repeatable")
	stdin := fs.Bool("stdin", envOrBool(env, envName("stdin"), false), "read items from stdin, one per line")
	useTmux := fs.Bool("tmux", envOrBool(env, envName("tmux"), false), "list tmux sessions and windows")
	socket := fs.String("socket", envOrDefault(env, envName("socket"), ""), "path to the tmux socket (overrides environment detection)")
	label := fs.String("label", envOrDefault(env, envName("label"), ""), "accessible name of the menu")
	placeholder := fs.String("placeholder", envOrDefault(env, envName("placeholder"), ""), "search input placeholder")
	filter := fs.Bool("filter", envOrBool(env, envName("filter"), true), "filter and rank items while typing")
	scorer := fs.String("scorer", envOrDefault(env, envName("scorer"), defaultScorer), fmt.Sprintf("scoring function (%s)", strings.Join(score.Names(), ", ")))
	defaultValue := fs.String("default-value", envOrDefault(env, envName("default-value"), ""), "value of the item selected first")
	search := fs.String("search", envOrDefault(env, envName("search"), ""), "initial search text")
	loop := fs.Bool("loop", envOrBool(env, envName("loop"), false), "wrap arrow navigation at both ends")
	disablePointer := fs.Bool("disable-pointer", envOrBool(env, envName("disable-pointer"), false), "do not select items on pointer movement")
	vim := fs.Bool("vim-bindings", envOrBool(env, envName("vim-bindings"), true), "enable ctrl+n/j/p/k navigation")
	dialog := fs.Bool("dialog", envOrBool(env, envName("dialog"), false), "render the menu inside a bordered dialog")
	width := fs.Int("width", envOrInt(env, envName("width"), 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envName("height"), 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envName("footer"), false), "enable footer hint row")
	poll := fs.Duration("poll", envOrDuration(env, envName("poll"), defaultPoll), "reload interval for live sources (0 disables)")
	trace := fs.Bool("trace", envOrBool(env, envName("trace"), false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envName("log-file"), ""), "path to the log file")
	printOnly := fs.Bool("print", envOrBool(env, envName("print"), false), "print the chosen value instead of running its action")

	return func() Config {
		cfg := Config{
			App: app.Config{
				Menus:          append([]string(nil), (*menus)...),
				Stdin:          *stdin,
				Tmux:           *useTmux,
				SocketPath:     *socket,
				Label:          *label,
				Placeholder:    *placeholder,
				Filter:         *filter,
				Scorer:         *scorer,
				DefaultValue:   *defaultValue,
				Search:         *search,
				Loop:           *loop,
				DisablePointer: *disablePointer,
				VimBindings:    *vim,
				Dialog:         *dialog,
				Width:          *width,
				Height:         *height,
				ShowFooter:     *footer,
				Poll:           *poll,
				Print:          *printOnly,
			},
			Logging: Logging{
				FilePath: *logFile,
				Trace:    *trace,
			},
			Flags: make(map[string]string),
		}
		fs.VisitAll(func(f *pflag.Flag) {
			cfg.Flags[f.Name] = f.Value.String()
		})
		return cfg
	}
}

// LoadArgs parses args against a fresh flag set. Tests use it to supply
// specific args and environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet(flagSetName, pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	build := Bind(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg := build()
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// Validate checks ranges, the scorer name and menu file extensions.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.Poll < 0 {
		return fmt.Errorf("poll must be >= 0 (got %s)", cfg.App.Poll)
	}
	if _, err := score.Lookup(cfg.App.Scorer); err != nil {
		return err
	}
	for _, path := range cfg.App.Menus {
		if _, err := menu.FormatFromPath(path); err != nil {
			return err
		}
	}
	return nil
}

func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrList(env map[string]string, key string) []string {
	v := strings.TrimSpace(env[key])
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range filepath.SplitList(v) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}
