package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"projectswitch/internal/logging"
	"projectswitch/internal/terminal"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// FileName is the settings file inside the config directory
	FileName = "settings.yaml"

	// EnvPrefix prefixes every environment override
	EnvPrefix = "PROJECTSWITCH_"

	maxFileSize = 1024 * 1024
)

// Store reads and writes the settings file
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store for the settings file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns ~/.config/projectswitch/settings.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "projectswitch", FileName), nil
}

// Path returns the settings file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the settings file, then applies environment overrides and
// defaults.
//
// Environment variables map to keys by splitting on the first underscore
// after the prefix:
//
//	PROJECTSWITCH_DATA_DIR -> data.dir
//	PROJECTSWITCH_KEYBINDINGS_SWITCH_PROJECT -> keybindings.switch_project
func (s *Store) Load() (*Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.readFile()
	if err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Settings
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &cfg, nil
}

func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

// readFile loads only the file layer so write-back never persists
// environment overrides
func (s *Store) readFile() (*koanf.Koanf, error) {
	k := koanf.New(".")

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return k, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open settings file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat settings file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("settings file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}
	if info.Mode().Perm()&0077 != 0 {
		logging.Warn("Settings file is readable by others", "path", logging.MaskPath(s.path), "mode", info.Mode().Perm().String())
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load settings file %s: %w", s.path, err)
	}
	return k, nil
}

// update applies set to the file layer and writes it back
func (s *Store) update(set func(k *koanf.Koanf) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.readFile()
	if err != nil {
		return err
	}
	if err := set(k); err != nil {
		return err
	}

	out, err := k.Marshal(yaml.Parser())
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, FileName+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Set writes a single key to the settings file
func (s *Store) Set(key string, value any) error {
	err := s.update(func(k *koanf.Koanf) error {
		return k.Set(key, value)
	})
	if err == nil {
		logging.Info("Setting saved", "key", key)
	}
	return err
}

// SaveKeybindings persists the hotkeys. Empty values keep the current
// binding.
func (s *Store) SaveKeybindings(kb Keybindings) error {
	err := s.update(func(k *koanf.Koanf) error {
		for key, value := range map[string]string{
			"keybindings.switch_project":  kb.SwitchProject,
			"keybindings.manage_projects": kb.ManageProjects,
			"keybindings.open_overview":   kb.OpenOverview,
		} {
			if value == "" {
				continue
			}
			if err := k.Set(key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logging.Info("Keybindings saved",
		"switchProject", kb.SwitchProject,
		"manageProjects", kb.ManageProjects,
		"openOverview", kb.OpenOverview)
	return nil
}

// LoadTerminalSnapshot returns the saved terminal snapshot
func (s *Store) LoadTerminalSnapshot() ([]terminal.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, err := s.readFile()
	if err != nil {
		return nil, err
	}
	var snapshots []terminal.Snapshot
	if err := k.Unmarshal("terminal.last_state", &snapshots); err != nil {
		return nil, fmt.Errorf("failed to decode terminal snapshot: %w", err)
	}
	return snapshots, nil
}

// SaveTerminalSnapshot replaces the saved terminal snapshot
func (s *Store) SaveTerminalSnapshot(snapshots []terminal.Snapshot) error {
	entries := make([]any, 0, len(snapshots))
	for _, snap := range snapshots {
		entry := map[string]any{"name": snap.Name}
		if snap.WorkingDirectory != "" {
			entry["cwd"] = snap.WorkingDirectory
		}
		if snap.ShellPath != "" {
			entry["shellPath"] = snap.ShellPath
		}
		if len(snap.ShellArgs) > 0 {
			args := make([]any, len(snap.ShellArgs))
			for i, a := range snap.ShellArgs {
				args[i] = a
			}
			entry["shellArgs"] = args
		}
		entries = append(entries, entry)
	}

	return s.update(func(k *koanf.Koanf) error {
		// Set merges maps, so clear the old slot first
		k.Delete("terminal.last_state")
		return k.Set("terminal.last_state", entries)
	})
}
