package menu

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/cmdk-popup/internal/tmux"
)

const (
	ActionPrint      = "print"
	ActionShell      = "shell"
	ActionTmuxSwitch = "tmux-switch"
)

const shellTimeout = 30 * time.Second

var (
	switchClientFn = tmux.SwitchClient
	runShellFn     = func(ctx context.Context, command string) ([]byte, error) {
		return exec.CommandContext(ctx, "sh", "-c", command).CombinedOutput()
	}
)

// KnownAction reports whether name is a supported action. Empty means print.
func KnownAction(name string) bool {
	switch strings.TrimSpace(name) {
	case "", ActionPrint, ActionShell, ActionTmuxSwitch:
		return true
	}
	return false
}

// ActionHandlers maps action names to their execution logic.
func ActionHandlers() map[string]Action {
	return map[string]Action{
		ActionPrint:      PrintAction,
		ActionShell:      ShellAction,
		ActionTmuxSwitch: TmuxSwitchAction,
	}
}

// ActionFor resolves the handler for item, defaulting to print.
func ActionFor(item Item) Action {
	name := strings.TrimSpace(item.Action)
	if name == "" {
		name = ActionPrint
	}
	return ActionHandlers()[name]
}

// PrintAction hands the item's value back to the caller on stdout.
func PrintAction(_ Context, item Item) tea.Cmd {
	return func() tea.Msg {
		return ActionResult{Info: fmt.Sprintf("Selected %s", item.Label), Output: item.Value()}
	}
}

// ShellAction runs the item's command through sh and returns its output.
func ShellAction(_ Context, item Item) tea.Cmd {
	command := strings.TrimSpace(item.Command)
	if command == "" {
		return func() tea.Msg { return ActionResult{Err: fmt.Errorf("no command for %s", item.Label)} }
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shellTimeout)
		defer cancel()
		out, err := runShellFn(ctx, command)
		if err != nil {
			return ActionResult{Err: fmt.Errorf("run %q: %w", command, err)}
		}
		return ActionResult{Info: fmt.Sprintf("Ran %s", item.Label), Output: strings.TrimRight(string(out), "\n")}
	}
}

// TmuxSwitchAction switches the launching client to the item's session or
// window.
func TmuxSwitchAction(ctx Context, item Item) tea.Cmd {
	target := item.Value()
	return func() tea.Msg {
		if err := switchClientFn(ctx.SocketPath, ctx.ClientID, target); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: fmt.Sprintf("Switched to %s", item.Label)}
	}
}
