package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultMaxAge is how long dated log files are kept (3 days)
	DefaultMaxAge = 3 * 24 * time.Hour

	// DirPermissions for the log directory (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions for log files (rw-r--r--)
	FilePermissions = 0644

	// FilePrefix is the base name of every log file
	FilePrefix = "app"
)

// ValidLogLevels maps accepted level names to slog levels
var ValidLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

var (
	defaultLogger *slog.Logger
	fileHandler   *RotatingFileHandler
	loggerMu      sync.RWMutex
)

// Config holds logger configuration
type Config struct {
	LogDir     string        // Directory for log files; empty disables file output
	MaxAge     time.Duration // Maximum age of log files before cleanup
	Level      string        // debug, info, warn or error
	JSONOutput bool          // Use JSON output format
	Verbose    bool          // Mirror log lines to stderr
}

// DefaultConfig returns the default configuration rooted at ~/.projectswitch/logs
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	return Config{
		LogDir:     filepath.Join(homeDir, ".projectswitch", "logs"),
		MaxAge:     DefaultMaxAge,
		Level:      "info",
		JSONOutput: true,
	}
}

// ParseLevel normalizes a level name, falling back to info for unknown values
func ParseLevel(level string) slog.Level {
	if l, ok := ValidLogLevels[strings.ToLower(strings.TrimSpace(level))]; ok {
		return l
	}
	return slog.LevelInfo
}

// RotatingFileHandler writes to one log file per day
type RotatingFileHandler struct {
	dir            string
	prefix         string
	maxAge         time.Duration
	currentFile    *os.File
	currentDate    string
	mu             sync.Mutex
	cleanupRunning atomic.Bool
	now            func() time.Time
}

// NewRotatingFileHandler creates the directory and opens today's file
func NewRotatingFileHandler(dir, prefix string, maxAge time.Duration) (*RotatingFileHandler, error) {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return nil, err
	}

	h := &RotatingFileHandler{
		dir:    dir,
		prefix: prefix,
		maxAge: maxAge,
		now:    time.Now,
	}

	if err := h.rotate(); err != nil {
		return nil, err
	}

	return h, nil
}

// Write implements io.Writer
func (h *RotatingFileHandler) Write(p []byte) (n int, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.now().Format("2006-01-02") != h.currentDate {
		if err := h.rotate(); err != nil {
			return 0, err
		}
		if h.cleanupRunning.CompareAndSwap(false, true) {
			go func() {
				defer h.cleanupRunning.Store(false)
				h.cleanup()
			}()
		}
	}

	return h.currentFile.Write(p)
}

func (h *RotatingFileHandler) rotate() error {
	if h.currentFile != nil {
		h.currentFile.Close()
	}

	today := h.now().Format("2006-01-02")
	filename := filepath.Join(h.dir, h.prefix+"."+today+".log")

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, FilePermissions)
	if err != nil {
		return err
	}

	h.currentFile = file
	h.currentDate = today
	h.updateSymlink(filename)

	return nil
}

// updateSymlink points prefix.log at the current dated file
func (h *RotatingFileHandler) updateSymlink(targetFile string) {
	symlinkPath := filepath.Join(h.dir, h.prefix+".log")

	if err := os.Remove(symlinkPath); err != nil && !os.IsNotExist(err) {
		return
	}
	_ = os.Symlink(targetFile, symlinkPath)
}

// cleanup removes log files older than maxAge
func (h *RotatingFileHandler) cleanup() {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		return
	}

	cutoff := h.now().Add(-h.maxAge)
	for _, entry := range entries {
		if entry.IsDir() || !isLogFile(entry.Name(), h.prefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(h.dir, entry.Name()))
		}
	}
}

// isLogFile reports whether name looks like prefix.YYYY-MM-DD.log
func isLogFile(name, prefix string) bool {
	if len(name) != len(prefix)+15 {
		return false
	}
	if !strings.HasPrefix(name, prefix+".") || !strings.HasSuffix(name, ".log") {
		return false
	}
	_, err := time.Parse("2006-01-02", name[len(prefix)+1:len(name)-4])
	return err == nil
}

// Close closes the current file
func (h *RotatingFileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.currentFile != nil {
		err := h.currentFile.Close()
		h.currentFile = nil
		return err
	}
	return nil
}

// Init installs the global logger for the given configuration
func Init(cfg Config) error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	var writers []io.Writer

	if cfg.LogDir != "" {
		maxAge := cfg.MaxAge
		if maxAge <= 0 {
			maxAge = DefaultMaxAge
		}
		h, err := NewRotatingFileHandler(cfg.LogDir, FilePrefix, maxAge)
		if err != nil {
			return err
		}
		if fileHandler != nil {
			fileHandler.Close()
		}
		fileHandler = h
		writers = append(writers, h)
	}

	if cfg.Verbose {
		writers = append(writers, os.Stderr)
	}

	var out io.Writer = io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}

	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.JSONOutput {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)

	return nil
}

// Close flushes and closes the log file, if any
func Close() error {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if fileHandler == nil {
		return nil
	}
	err := fileHandler.Close()
	fileHandler = nil
	return err
}

// Logger returns the default logger
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	if defaultLogger == nil {
		return slog.Default()
	}
	return defaultLogger
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs at info level
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs at error level
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// With returns a logger with additional attributes
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// MaskPath replaces the home directory prefix with ~
func MaskPath(path string) string {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		return path
	}

	if path == homeDir || strings.HasPrefix(path, homeDir+string(filepath.Separator)) {
		return "~" + path[len(homeDir):]
	}

	return path
}
