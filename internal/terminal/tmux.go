package terminal

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"projectswitch/internal/logging"
)

// windowFormat is the list-windows format. Fields are tab separated.
const windowFormat = "#{window_id}\t#{window_name}\t#{pane_current_path}\t#{pane_start_command}"

// Tmux hosts sessions as windows of the current tmux session
type Tmux struct {
	// Target restricts operations to a tmux session. Empty means the
	// session of the calling client.
	Target string

	run func(ctx context.Context, args ...string) ([]byte, error)
}

// NewTmux returns a host backed by the tmux binary on PATH
func NewTmux() *Tmux {
	return &Tmux{run: runTmux}
}

func runTmux(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("tmux %s: %w", args[0], err)
		}
		return nil, fmt.Errorf("tmux %s: %s: %w", args[0], msg, err)
	}
	return out, nil
}

// Sessions lists the windows of the target session
func (t *Tmux) Sessions(ctx context.Context) ([]Session, error) {
	args := []string{"list-windows", "-F", windowFormat}
	if t.Target != "" {
		args = append(args, "-t", t.Target)
	}
	out, err := t.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseWindows(string(out)), nil
}

// parseWindows reads list-windows output produced with windowFormat
func parseWindows(out string) []Session {
	var sessions []Session
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 4)
		for len(fields) < 4 {
			fields = append(fields, "")
		}

		s := Session{
			ID:               fields[0],
			Name:             fields[1],
			WorkingDirectory: fields[2],
		}
		// pane_start_command is empty for windows running the default shell
		if argv := strings.Fields(unquoteStartCommand(fields[3])); len(argv) > 0 {
			s.ShellPath = argv[0]
			if len(argv) > 1 {
				s.ShellArgs = argv[1:]
			}
		}
		sessions = append(sessions, s)
	}
	return sessions
}

// unquoteStartCommand strips the double quotes tmux adds around the
// start command
func unquoteStartCommand(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	if len(cmd) >= 2 && cmd[0] == '"' && cmd[len(cmd)-1] == '"' {
		return cmd[1 : len(cmd)-1]
	}
	return cmd
}

// Open creates a new window. Without a shell path tmux starts its
// default shell.
func (t *Tmux) Open(ctx context.Context, opts Options) (Session, error) {
	args := []string{"new-window", "-d", "-P", "-F", "#{window_id}"}
	if t.Target != "" {
		args = append(args, "-t", t.Target+":")
	}
	if opts.Name != "" {
		args = append(args, "-n", opts.Name)
	}
	if opts.WorkingDirectory != "" {
		args = append(args, "-c", opts.WorkingDirectory)
	}
	if opts.ShellPath != "" {
		args = append(args, opts.ShellPath)
		args = append(args, opts.ShellArgs...)
	}

	out, err := t.run(ctx, args...)
	if err != nil {
		logging.Error("Failed to open tmux window", "name", opts.Name, "cwd", logging.MaskPath(opts.WorkingDirectory), "error", err)
		return Session{}, err
	}

	s := Session{
		ID:               strings.TrimSpace(string(out)),
		Name:             opts.Name,
		WorkingDirectory: opts.WorkingDirectory,
		ShellPath:        opts.ShellPath,
		ShellArgs:        opts.ShellArgs,
	}
	logging.Info("Tmux window opened", "id", s.ID, "name", s.Name, "cwd", logging.MaskPath(s.WorkingDirectory))
	return s, nil
}
