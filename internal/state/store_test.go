package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "data", DataFileName))
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	data, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, data.Projects)
	assert.Empty(t, data.Groups)
	assert.NotNil(t, data.Projects)
	assert.NotNil(t, data.Groups)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "{projects: nope"},
		{"empty file", ""},
		{"wrong shape", `{"projects": "alpha"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
			require.NoError(t, os.WriteFile(s.Path(), []byte(tt.content), 0644))

			_, err := s.Load()
			assert.ErrorIs(t, err, ErrCorruptData)
		})
	}
}

func TestStoreSaveIsPrettyPrinted(t *testing.T) {
	s := newTestStore(t)
	data := &ProjectData{
		Projects: []Project{{Name: "Alpha", Path: "/a", GroupID: "1"}},
		Groups:   []Group{{ID: "1", Name: "Work"}},
	}
	require.NoError(t, s.Save(data))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	want, err := json.MarshalIndent(data, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, string(want)+"\n", string(raw))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestStoreSaveNilCollectionsAsArrays(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(&ProjectData{}))

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"projects": [], "groups": []}`, string(raw))
}

func TestStoreRoundTripIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0755))
	// description omitted on purpose; older documents may lack it
	original := `{
  "projects": [
    {"name": "Alpha", "path": "/a", "groupId": "1", "persistTerminal": true},
    {"name": "Beta", "path": "/b", "description": "docs", "groupId": "default", "persistTerminal": false}
  ],
  "groups": [{"id": "1", "name": "Work"}]
}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(original), 0644))

	first, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Save(first))
	once, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	second, err := s.Load()
	require.NoError(t, err)
	require.NoError(t, s.Save(second))
	twice, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	assert.Equal(t, string(once), string(twice))
	assert.Equal(t, first, second)
	assert.Equal(t, "", first.Projects[0].Description)
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(NewProjectData()))
	require.NoError(t, s.Save(NewProjectData()))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, DataFileName, entries[0].Name())
}

func TestValidate(t *testing.T) {
	data := &ProjectData{
		Projects: []Project{
			{Name: "ok", GroupID: "1"},
			{Name: "parked", GroupID: DefaultGroupID},
			{Name: "lost", GroupID: "42"},
		},
		Groups: []Group{{ID: "1", Name: "Work"}},
	}

	err := Validate(data)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "lost -> 42")

	data.Projects = data.Projects[:2]
	assert.NoError(t, Validate(data))
}

func TestStoreWatchSeesSave(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	require.NoError(t, s.Watch(ctx, func() { changed <- struct{}{} }))

	require.NoError(t, s.Save(NewProjectData()))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the save")
	}
}
