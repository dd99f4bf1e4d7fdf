package overview

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"projectswitch/internal/settings"
	"projectswitch/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	msg, err := Decode([]byte(`{"command":"updatePersistTerminal","projectName":"Alpha","persistTerminal":false}`))
	require.NoError(t, err)
	assert.Equal(t, CmdUpdatePersistTerminal, msg.Command)
	assert.Equal(t, "Alpha", msg.ProjectName)
	require.NotNil(t, msg.PersistTerminal)
	assert.False(t, *msg.PersistTerminal)

	msg, err = Decode([]byte(`{"command":"saveHotkeys","switchProjectHotkey":"alt+s","manageProjectsHotkey":"alt+m","openWebOverviewHotkey":"alt+o"}`))
	require.NoError(t, err)
	assert.Equal(t, "alt+o", msg.OpenWebOverviewHotkey)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{command`},
		{"no command", `{}`},
		{"unknown command", `{"command":"reboot"}`},
		{"edit without name", `{"command":"editProject"}`},
		{"delete group without name", `{"command":"deleteGroup"}`},
		{"persist without flag", `{"command":"updatePersistTerminal","projectName":"A"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrInvalidMessage)
		})
	}
}

func sampleData() *state.ProjectData {
	return &state.ProjectData{
		Groups: []state.Group{{ID: "1", Name: "Work"}, {ID: "2", Name: "Empty"}},
		Projects: []state.Project{
			{Name: "Alpha", Path: "/a", Description: "first", GroupID: "1", PersistTerminal: true},
			{Name: "Parked", Path: "/p", GroupID: state.DefaultGroupID},
			{Name: "Beta", Path: "/b", GroupID: "1"},
		},
	}
}

func TestBuild(t *testing.T) {
	v := Build(sampleData(), settings.Defaults().Keybindings, func(path string) string {
		if path == "/a" {
			return "main"
		}
		return ""
	})

	require.Len(t, v.Groups, 2)
	assert.Equal(t, "Work", v.Groups[0].Name)
	assert.Equal(t, []ProjectView{
		{Name: "Alpha", Description: "first", Path: "/a", PersistTerminal: true, Decoration: "main"},
		{Name: "Beta", Path: "/b"},
	}, v.Groups[0].Projects)
	assert.Empty(t, v.Groups[1].Projects)
	assert.NotNil(t, v.Groups[1].Projects)
	assert.Equal(t, []ProjectView{{Name: "Parked", Path: "/p"}}, v.Ungrouped)
	assert.Equal(t, 3, v.ProjectCount())
	assert.Equal(t, settings.DefaultSwitchProjectKey, v.Keybindings.SwitchProject)
}

func TestRenderIsPure(t *testing.T) {
	v := Build(sampleData(), settings.Defaults().Keybindings, nil)

	first := Render(v, 80)
	assert.Equal(t, first, Render(v, 80))
	for _, want := range []string{Title, "Hotkey Settings", "ctrl+shift+u", "Work", "Alpha", "first", "/b", "[x]", "[ ]", "Ungrouped", "Parked", "(no projects)"} {
		assert.Contains(t, first, want)
	}
	assert.Less(t, strings.Index(first, "Alpha"), strings.Index(first, "Beta"))
}

func TestRenderEmpty(t *testing.T) {
	out := Render(Build(state.NewProjectData(), settings.Defaults().Keybindings, nil), 0)
	assert.Contains(t, out, "No projects yet.")
}

type fakeActions struct {
	calls   []string
	manager *state.Manager
	err     error
}

func (f *fakeActions) record(s string) error {
	f.calls = append(f.calls, s)
	return f.err
}

func (f *fakeActions) AddProject(ctx context.Context) error { return f.record("addProject") }
func (f *fakeActions) EditProject(ctx context.Context, name string) error {
	return f.record("editProject:" + name)
}
func (f *fakeActions) DeleteProject(ctx context.Context, name string) error {
	return f.record("deleteProject:" + name)
}
func (f *fakeActions) AddGroup(ctx context.Context) error {
	if err := f.record("addGroup"); err != nil {
		return err
	}
	_, err := f.manager.AddGroup("Added")
	return err
}
func (f *fakeActions) EditGroup(ctx context.Context, name string) error {
	return f.record("editGroup:" + name)
}
func (f *fakeActions) DeleteGroup(ctx context.Context, name string) error {
	return f.record("deleteGroup:" + name)
}
func (f *fakeActions) SetPersistTerminal(name string, persist bool) error {
	return f.record(fmt.Sprintf("persist:%s:%v", name, persist))
}

type notes struct{ infos, warns []string }

func (n *notes) Info(format string, args ...any) { n.infos = append(n.infos, fmt.Sprintf(format, args...)) }
func (n *notes) Warn(format string, args ...any) { n.warns = append(n.warns, fmt.Sprintf(format, args...)) }

func newDispatcher(t *testing.T) (*Dispatcher, *fakeActions, *settings.Store, *notes) {
	t.Helper()
	dir := t.TempDir()
	m := state.NewManager(state.NewStore(filepath.Join(dir, state.DataFileName)))
	cfg := settings.NewStore(filepath.Join(dir, settings.FileName))
	actions := &fakeActions{manager: m}
	n := &notes{}
	return NewDispatcher(actions, cfg, m, nil, n), actions, cfg, n
}

func TestDispatchRoutesAndRebuilds(t *testing.T) {
	d, actions, _, _ := newDispatcher(t)
	ctx := context.Background()

	v, err := d.Dispatch(ctx, Message{Command: CmdAddGroup})
	require.NoError(t, err)
	require.Len(t, v.Groups, 1, "the view reflects the handler's change")
	assert.Equal(t, "Added", v.Groups[0].Name)

	persist := true
	for _, msg := range []Message{
		{Command: CmdAddProject},
		{Command: CmdEditProject, ProjectName: "A"},
		{Command: CmdDeleteProject, ProjectName: "A"},
		{Command: CmdEditGroup, GroupName: "G"},
		{Command: CmdDeleteGroup, GroupName: "G"},
		{Command: CmdUpdatePersistTerminal, ProjectName: "A", PersistTerminal: &persist},
	} {
		_, err := d.Dispatch(ctx, msg)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{
		"addGroup", "addProject", "editProject:A", "deleteProject:A",
		"editGroup:G", "deleteGroup:G", "persist:A:true",
	}, actions.calls)
}

func TestDispatchCancelledIsNotAnError(t *testing.T) {
	d, actions, _, _ := newDispatcher(t)
	actions.err = state.ErrCancelled

	_, err := d.Dispatch(context.Background(), Message{Command: CmdAddProject})
	assert.NoError(t, err)

	actions.err = state.ErrNotFound
	_, err = d.Dispatch(context.Background(), Message{Command: CmdEditProject, ProjectName: "x"})
	assert.ErrorIs(t, err, state.ErrNotFound)
}

func TestDispatchSaveHotkeys(t *testing.T) {
	d, _, cfg, n := newDispatcher(t)

	v, err := d.Dispatch(context.Background(), Message{
		Command:               CmdSaveHotkeys,
		SwitchProjectHotkey:   "alt+s",
		ManageProjectsHotkey:  "alt+m",
		OpenWebOverviewHotkey: "alt+o",
	})
	require.NoError(t, err)
	assert.Equal(t, settings.Keybindings{SwitchProject: "alt+s", ManageProjects: "alt+m", OpenOverview: "alt+o"}, v.Keybindings)
	require.Len(t, n.infos, 1)

	loaded, err := cfg.Load()
	require.NoError(t, err)
	assert.Equal(t, "alt+m", loaded.Keybindings.ManageProjects)
}

func TestRunBatch(t *testing.T) {
	d, actions, _, n := newDispatcher(t)
	input := strings.Join([]string{
		`{"command":"addGroup"}`,
		``,
		`not json`,
		`{"command":"editGroup","groupName":"Added"}`,
	}, "\n")

	v, err := d.RunBatch(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, v.Groups, 1)
	assert.Equal(t, []string{"addGroup", "editGroup:Added"}, actions.calls)
	require.Len(t, n.warns, 1)
	assert.Contains(t, n.warns[0], "line 3")
}
