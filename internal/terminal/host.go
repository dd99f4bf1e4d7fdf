// Package terminal hosts terminal sessions and snapshots their layout so it
// can be recreated after a project switch.
//
// Three hosts are provided: Tmux drives windows of the surrounding tmux
// session, ITerm drives iTerm2 tabs, and Manager owns PTY sessions inside
// this process. Each exposes whatever subset of working directory and
// shell configuration it knows.
package terminal

import (
	"context"
	"os"
)

// Options describes a session to open
type Options struct {
	Name             string
	WorkingDirectory string
	ShellPath        string
	ShellArgs        []string
}

// Session is an open terminal as reported by its host. Fields the host
// cannot expose are left empty.
type Session struct {
	ID               string
	Name             string
	WorkingDirectory string
	ShellPath        string
	ShellArgs        []string
}

// Host enumerates and opens terminal sessions
type Host interface {
	Sessions(ctx context.Context) ([]Session, error)
	Open(ctx context.Context, opts Options) (Session, error)
}

// Backend names accepted by NewHost
const (
	BackendAuto  = "auto"
	BackendTmux  = "tmux"
	BackendITerm = "iterm"
	BackendPTY   = "pty"
)

// NewHost returns the host for backend. Auto picks tmux when running inside
// a tmux client, iTerm2 when running in its terminal, and PTY sessions
// otherwise.
func NewHost(backend string) Host {
	switch backend {
	case BackendTmux:
		return NewTmux()
	case BackendITerm:
		return NewITerm()
	case BackendPTY:
		return NewManager()
	}
	if os.Getenv("TMUX") != "" {
		return NewTmux()
	}
	if os.Getenv("TERM_PROGRAM") == "iTerm.app" {
		return NewITerm()
	}
	return NewManager()
}

// defaultShell returns $SHELL or /bin/sh
func defaultShell() string {
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return "/bin/sh"
}
