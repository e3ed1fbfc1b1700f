package tmux

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// CurrentClientID attempts to detect the client that launched the popup so
// SwitchClient targets the visible tmux client instead of the control-mode
// connection.
func CurrentClientID(socketPath string) string {
	client, err := newTmux(socketPath)
	if err != nil {
		return ""
	}
	defer client.Close()
	target := strings.TrimSpace(os.Getenv("TMUX_PANE"))
	name, err := client.DisplayMessage(target, "#{client_name}")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(name)
}

// SwitchClient points clientID (or the most recent client) at target, which
// may be a session name or a session:index window address.
func SwitchClient(socketPath, clientID, target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return fmt.Errorf("switch target required")
	}
	client, err := newTmux(socketPath)
	if err != nil {
		return fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()

	opts := &gotmux.SwitchClientOptions{TargetSession: target}
	if id := strings.TrimSpace(clientID); id != "" {
		opts.TargetClient = id
	}
	if err := client.SwitchClient(opts); err != nil {
		return fmt.Errorf("switch to %s: %w", target, err)
	}
	return nil
}

// ResolveSocketPath picks the tmux socket: the flag value, then
// CMDK_POPUP_SOCKET, then the socket named in $TMUX, then tmux's default
// location for the current user.
func ResolveSocketPath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if envSocket := os.Getenv("CMDK_POPUP_SOCKET"); envSocket != "" {
		return envSocket, nil
	}
	if tmuxEnv := os.Getenv("TMUX"); tmuxEnv != "" {
		if socket, _, _ := strings.Cut(tmuxEnv, ","); socket != "" {
			return socket, nil
		}
	}
	baseDir := os.Getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("resolve tmux socket: %w", err)
	}
	return filepath.Join(baseDir, fmt.Sprintf("tmux-%s", u.Uid), "default"), nil
}
