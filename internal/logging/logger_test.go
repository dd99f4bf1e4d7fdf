package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLogFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		prefix   string
		want     bool
	}{
		{"valid dated log file", "app.2024-01-23.log", "app", true},
		{"symlink file", "app.log", "app", false},
		{"wrong prefix", "other.2024-01-23.log", "app", false},
		{"not a log file", "app.2024-01-23.txt", "app", false},
		{"garbage date", "app.2024-13-99.log", "app", false},
		{"different prefix length", "myapp.2024-01-23.log", "myapp", true},
		{"empty filename", "", "app", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLogFile(tt.filename, tt.prefix))
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"  error  ", slog.LevelError},
		{"trace", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level))
		})
	}
}

func TestInitWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Init(Config{LogDir: dir, Level: "debug", JSONOutput: true}))
	t.Cleanup(func() { _ = Close() })

	Info("project added", "name", "alpha")

	today := time.Now().Format("2006-01-02")
	data, err := os.ReadFile(filepath.Join(dir, FilePrefix+"."+today+".log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"project added"`)
	assert.Contains(t, string(data), `"name":"alpha"`)

	target, err := os.Readlink(filepath.Join(dir, FilePrefix+".log"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(target, today+".log"))
}

func TestInitWithoutDirDiscards(t *testing.T) {
	require.NoError(t, Init(Config{Level: "info"}))
	assert.NotPanics(t, func() { Warn("nowhere to go") })
}

func TestRotatingFileHandlerRotatesOnDateChange(t *testing.T) {
	dir := t.TempDir()
	h, err := NewRotatingFileHandler(dir, "app", time.Hour)
	require.NoError(t, err)
	defer h.Close()

	day := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	h.mu.Lock()
	h.now = func() time.Time { return day }
	h.mu.Unlock()

	_, err = h.Write([]byte("line\n"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "app.2025-03-01.log"))
	assert.NoError(t, err)
}

func TestMaskPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "/usr/local/bin", MaskPath("/usr/local/bin"))
	assert.Equal(t, "", MaskPath(""))
	assert.Equal(t, "~"+string(filepath.Separator)+"code", MaskPath(filepath.Join(home, "code")))
	assert.Equal(t, home+"x", MaskPath(home+"x"))
}
