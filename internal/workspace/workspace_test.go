package workspace

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"projectswitch/internal/terminal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenerCommand(t *testing.T) {
	tests := []struct {
		name   string
		opener string
		want   []string
	}{
		{"appended", "code -n", []string{"code", "-n", "/p"}},
		{"placeholder", "tmux new-window -c {path}", []string{"tmux", "new-window", "-c", "/p"}},
		{"embedded placeholder", "open --dir={path}", []string{"open", "--dir=/p"}},
		{"repeated", "cp -r {path} {path}.bak", []string{"cp", "-r", "/p", "/p.bak"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OpenerCommand(tt.opener, "/p"))
		})
	}
}

func TestOpenFolderPrintsPathWithoutOpener(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	w := NewLocal(terminal.NewManager(), "  ", &out)

	require.NoError(t, w.OpenFolder(context.Background(), dir))
	assert.Equal(t, dir+"\n", out.String())
}

func TestOpenFolderRunsOpener(t *testing.T) {
	dir := t.TempDir()
	var got []string
	w := NewLocal(terminal.NewManager(), "code -r", &bytes.Buffer{})
	w.run = func(ctx context.Context, argv []string) error {
		got = argv
		return nil
	}

	require.NoError(t, w.OpenFolder(context.Background(), dir))
	assert.Equal(t, []string{"code", "-r", dir}, got)
}

func TestOpenFolderErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	w := NewLocal(terminal.NewManager(), "code", &bytes.Buffer{})
	w.run = func(ctx context.Context, argv []string) error { return errors.New("exit status 1") }

	assert.Error(t, w.OpenFolder(context.Background(), filepath.Join(dir, "missing")))
	assert.Error(t, w.OpenFolder(context.Background(), file))
	assert.Error(t, w.OpenFolder(context.Background(), dir))
}
