// Package workspace opens project folders and exposes the terminal host
// that sessions are captured from and restored into.
package workspace

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"projectswitch/internal/logging"
	"projectswitch/internal/terminal"
)

// PathPlaceholder is replaced by the folder path in an opener command
const PathPlaceholder = "{path}"

// Workspace is the host the switcher drives
type Workspace interface {
	terminal.Host
	OpenFolder(ctx context.Context, path string) error
}

// Local opens folders with a configured command and hosts terminals with
// the embedded terminal host
type Local struct {
	terminal.Host

	opener string
	out    io.Writer
	run    func(ctx context.Context, argv []string) error
}

// NewLocal creates a workspace. An empty opener prints the folder path to
// out instead of running a command.
func NewLocal(host terminal.Host, opener string, out io.Writer) *Local {
	return &Local{
		Host:   host,
		opener: strings.TrimSpace(opener),
		out:    out,
		run:    runAttached,
	}
}

func runAttached(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// OpenFolder opens path with the opener command
func (l *Local) OpenFolder(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot open %s: not a directory", path)
	}

	if l.opener == "" {
		_, err := fmt.Fprintln(l.out, path)
		return err
	}

	argv := OpenerCommand(l.opener, path)
	logging.Info("Opening folder", "path", logging.MaskPath(path), "command", argv[0])
	if err := l.run(ctx, argv); err != nil {
		return fmt.Errorf("opener %q failed: %w", argv[0], err)
	}
	return nil
}

// OpenerCommand expands an opener template into argv. The path is
// substituted for every placeholder, or appended when there is none.
func OpenerCommand(opener, path string) []string {
	fields := strings.Fields(opener)
	argv := make([]string, 0, len(fields)+1)
	substituted := false
	for _, f := range fields {
		if strings.Contains(f, PathPlaceholder) {
			f = strings.ReplaceAll(f, PathPlaceholder, path)
			substituted = true
		}
		argv = append(argv, f)
	}
	if !substituted {
		argv = append(argv, path)
	}
	return argv
}
