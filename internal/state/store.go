package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"projectswitch/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// DataFileName is the name of the persisted document
const DataFileName = "projects.json"

// Store reads and writes the ProjectData document. Every call goes to disk;
// there is no cache and no locking, so concurrent writers race and the last
// save wins.
type Store struct {
	path string
}

// NewStore creates a store backed by path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.projectswitch/projects.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".projectswitch", DataFileName), nil
}

// Path returns the document location
func (s *Store) Path() string {
	return s.path
}

// Load reads the document. A missing file yields an empty document; a file
// that cannot be parsed yields ErrCorruptData.
func (s *Store) Load() (*ProjectData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewProjectData(), nil
		}
		return nil, fmt.Errorf("failed to read project data: %w", err)
	}

	var data ProjectData
	if err := json.Unmarshal(raw, &data); err != nil {
		logging.Error("Project data is unreadable", "path", logging.MaskPath(s.path), "error", err)
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, s.path, err)
	}
	data.normalize()

	return &data, nil
}

// Save overwrites the document with pretty-printed JSON. The write goes to a
// temp file in the same directory and is renamed into place.
func (s *Store) Save(data *ProjectData) error {
	if data == nil {
		data = NewProjectData()
	}
	data.normalize()

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project data: %w", err)
	}
	raw = append(raw, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write project data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write project data: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write project data: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace project data: %w", err)
	}

	logging.Debug("Project data saved",
		"path", logging.MaskPath(s.path),
		"projects", len(data.Projects),
		"groups", len(data.Groups))
	return nil
}

// Validate reports projects referencing groups that do not exist
func Validate(data *ProjectData) error {
	orphans := data.Orphans()
	if len(orphans) == 0 {
		return nil
	}
	parts := make([]string, len(orphans))
	for i, p := range orphans {
		parts[i] = fmt.Sprintf("%s -> %s", p.Name, p.GroupID)
	}
	return fmt.Errorf("group %w for %d project(s): %s", ErrNotFound, len(orphans), strings.Join(parts, ", "))
}

// Watch calls onChange whenever the document is written, created or
// replaced, until ctx is done. The parent directory is watched so that
// rename-based saves are seen.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		target := filepath.Clean(s.path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("Project data watcher error", "error", err)
			}
		}
	}()

	return nil
}
