package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerOpenAndList(t *testing.T) {
	m := NewManager()
	defer m.CloseAll()

	dir := t.TempDir()
	first, err := m.Open(context.Background(), Options{
		Name:             "one",
		WorkingDirectory: dir,
		ShellPath:        "/bin/sh",
		ShellArgs:        []string{"-c", "sleep 5"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := m.Open(context.Background(), Options{
		WorkingDirectory: dir,
		ShellPath:        "/bin/sh",
		ShellArgs:        []string{"-c", "sleep 5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Terminal 2", second.Name)

	sessions, err := m.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "one", sessions[0].Name)
	assert.Equal(t, dir, sessions[0].WorkingDirectory)
	assert.Equal(t, "/bin/sh", sessions[0].ShellPath)
	assert.Equal(t, []string{"-c", "sleep 5"}, sessions[0].ShellArgs)

	require.NoError(t, m.Close(first.ID))
	assert.Nil(t, m.Get(first.ID))
	assert.Len(t, m.List(), 1)
}

func TestManagerExitedSessionsAreNotListed(t *testing.T) {
	m := NewManager()
	defer m.CloseAll()

	exited := make(chan string, 1)
	m.SetExitHandler(func(id string) { exited <- id })

	term, err := m.Create(Options{ShellPath: "/bin/sh", ShellArgs: []string{"-c", "exit 0"}})
	require.NoError(t, err)

	select {
	case id := <-exited:
		assert.Equal(t, term.ID, id)
	case <-time.After(5 * time.Second):
		t.Fatal("shell did not exit")
	}

	sessions, err := m.Sessions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestManagerCreateBadShell(t *testing.T) {
	m := NewManager()
	_, err := m.Create(Options{ShellPath: "/nonexistent/shell"})
	assert.Error(t, err)
	assert.Empty(t, m.List())
}
