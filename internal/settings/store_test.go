package settings

import (
	"os"
	"path/filepath"
	"testing"

	"projectswitch/internal/terminal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "config", FileName))
}

func writeSettings(t *testing.T, s *Store, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0700))
	require.NoError(t, os.WriteFile(s.Path(), []byte(content), 0600))
}

func TestLoadDefaults(t *testing.T) {
	s := newTestStore(t)

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Keybindings{
		SwitchProject:  "ctrl+shift+u",
		ManageProjects: "ctrl+shift+i",
		OpenOverview:   "ctrl+shift+w",
	}, cfg.Keybindings)
	assert.Equal(t, terminal.BackendAuto, cfg.Terminal.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Workspace.Opener)
	assert.Empty(t, cfg.Terminal.LastState)
}

func TestLoadFileAndEnv(t *testing.T) {
	s := newTestStore(t)
	writeSettings(t, s, `
keybindings:
  switch_project: alt+p
workspace:
  opener: code {path}
terminal:
  backend: tmux
  last_state:
    - name: zsh
      cwd: /old
      shellPath: /bin/zsh
      shellArgs: ["-l"]
data:
  dir: /from/file
`)
	t.Setenv("PROJECTSWITCH_DATA_DIR", "/from/env")
	t.Setenv("PROJECTSWITCH_LOG_LEVEL", "debug")

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "alt+p", cfg.Keybindings.SwitchProject)
	assert.Equal(t, DefaultManageProjectsKey, cfg.Keybindings.ManageProjects)
	assert.Equal(t, "code {path}", cfg.Workspace.Opener)
	assert.Equal(t, terminal.BackendTmux, cfg.Terminal.Backend)
	assert.Equal(t, "/from/env", cfg.Data.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []terminal.Snapshot{
		{Name: "zsh", WorkingDirectory: "/old", ShellPath: "/bin/zsh", ShellArgs: []string{"-l"}},
	}, cfg.Terminal.LastState)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad backend", "terminal:\n  backend: screen\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"unnamed snapshot", "terminal:\n  last_state:\n    - cwd: /x\n"},
		{"not yaml", "keybindings: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			writeSettings(t, s, tt.content)
			_, err := s.Load()
			assert.Error(t, err)
		})
	}
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "data.dir", envKey("PROJECTSWITCH_DATA_DIR"))
	assert.Equal(t, "keybindings.switch_project", envKey("PROJECTSWITCH_KEYBINDINGS_SWITCH_PROJECT"))
	assert.Equal(t, "verbose", envKey("PROJECTSWITCH_VERBOSE"))
}

func TestSaveKeybindingsKeepsOtherKeys(t *testing.T) {
	s := newTestStore(t)
	writeSettings(t, s, "workspace:\n  opener: code {path}\nkeybindings:\n  open_overview: alt+o\n")

	require.NoError(t, s.SaveKeybindings(Keybindings{SwitchProject: "alt+s", ManageProjects: "alt+m"}))

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, Keybindings{SwitchProject: "alt+s", ManageProjects: "alt+m", OpenOverview: "alt+o"}, cfg.Keybindings)
	assert.Equal(t, "code {path}", cfg.Workspace.Opener)

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSaveKeybindingsDoesNotPersistEnv(t *testing.T) {
	s := newTestStore(t)
	t.Setenv("PROJECTSWITCH_DATA_DIR", "/from/env")

	require.NoError(t, s.SaveKeybindings(Keybindings{SwitchProject: "alt+s"}))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "/from/env")
}

func TestTerminalSnapshotRoundTrip(t *testing.T) {
	s := newTestStore(t)

	empty, err := s.LoadTerminalSnapshot()
	require.NoError(t, err)
	assert.Empty(t, empty)

	snaps := []terminal.Snapshot{
		{Name: "zsh", WorkingDirectory: "/a", ShellPath: "/bin/zsh", ShellArgs: []string{"-l", "-i"}},
		{Name: "bare"},
	}
	require.NoError(t, s.SaveTerminalSnapshot(snaps))

	got, err := s.LoadTerminalSnapshot()
	require.NoError(t, err)
	assert.Equal(t, snaps, got)

	require.NoError(t, s.SaveTerminalSnapshot([]terminal.Snapshot{{Name: "only"}}))
	got, err = s.LoadTerminalSnapshot()
	require.NoError(t, err)
	assert.Equal(t, []terminal.Snapshot{{Name: "only"}}, got, "saving replaces the previous snapshot")

	require.NoError(t, s.SaveTerminalSnapshot(nil))
	got, err = s.LoadTerminalSnapshot()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSettingsStoreServesSnapshotter(t *testing.T) {
	var _ terminal.SnapshotStore = (*Store)(nil)
}

func TestSet(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Set("workspace.opener", "open -a Terminal {path}"))

	cfg, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "open -a Terminal {path}", cfg.Workspace.Opener)
}
