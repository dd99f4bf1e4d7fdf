package terminal

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRun struct {
	calls [][]string
	out   string
	err   error
}

func (r *recordedRun) run(ctx context.Context, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.out), nil
}

func TestParseWindows(t *testing.T) {
	out := "@1\tzsh\t/home/me/a\t\n" +
		"@2\tlogs\t/var/log\t\"tail -f syslog\"\n" +
		"\n" +
		"@3\tshort\n"

	got := parseWindows(out)
	require.Len(t, got, 3)
	assert.Equal(t, Session{ID: "@1", Name: "zsh", WorkingDirectory: "/home/me/a"}, got[0])
	assert.Equal(t, Session{ID: "@2", Name: "logs", WorkingDirectory: "/var/log", ShellPath: "tail", ShellArgs: []string{"-f", "syslog"}}, got[1])
	assert.Equal(t, Session{ID: "@3", Name: "short"}, got[2])
}

func TestTmuxSessions(t *testing.T) {
	r := &recordedRun{out: "@1\tzsh\t/a\t\n"}
	host := &Tmux{Target: "work", run: r.run}

	sessions, err := host.Sessions(context.Background())
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, [][]string{{"list-windows", "-F", windowFormat, "-t", "work"}}, r.calls)
}

func TestTmuxOpen(t *testing.T) {
	r := &recordedRun{out: "@7\n"}
	host := &Tmux{run: r.run}

	s, err := host.Open(context.Background(), Options{
		Name:             "build",
		WorkingDirectory: "/p",
		ShellPath:        "/bin/bash",
		ShellArgs:        []string{"-l"},
	})
	require.NoError(t, err)
	assert.Equal(t, "@7", s.ID)
	assert.Equal(t, "/p", s.WorkingDirectory)
	assert.Equal(t, [][]string{{
		"new-window", "-d", "-P", "-F", "#{window_id}",
		"-n", "build", "-c", "/p", "/bin/bash", "-l",
	}}, r.calls)
}

func TestTmuxOpenDefaultShell(t *testing.T) {
	r := &recordedRun{out: "@8\n"}
	host := &Tmux{Target: "work", run: r.run}

	_, err := host.Open(context.Background(), Options{WorkingDirectory: "/p"})
	require.NoError(t, err)
	assert.Equal(t, []string{"new-window", "-d", "-P", "-F", "#{window_id}", "-t", "work:", "-c", "/p"}, r.calls[0])
}

func TestTmuxErrors(t *testing.T) {
	r := &recordedRun{err: errors.New("no server running")}
	host := &Tmux{run: r.run}

	_, err := host.Sessions(context.Background())
	assert.Error(t, err)
	_, err = host.Open(context.Background(), Options{Name: "x"})
	assert.Error(t, err)
}

func TestNewHost(t *testing.T) {
	assert.IsType(t, &Tmux{}, NewHost(BackendTmux))
	assert.IsType(t, &ITerm{}, NewHost(BackendITerm))
	assert.IsType(t, &Manager{}, NewHost(BackendPTY))

	t.Setenv("TMUX", "")
	t.Setenv("TERM_PROGRAM", "")
	assert.IsType(t, &Manager{}, NewHost(BackendAuto))
	t.Setenv("TERM_PROGRAM", "iTerm.app")
	assert.IsType(t, &ITerm{}, NewHost(BackendAuto))
	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")
	assert.IsType(t, &Tmux{}, NewHost(BackendAuto), "tmux wins inside iTerm2")
}
