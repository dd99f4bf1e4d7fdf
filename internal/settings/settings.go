// Package settings loads and saves host settings: keybindings, the
// workspace opener, the terminal backend and the saved terminal snapshot.
package settings

import (
	"fmt"
	"strings"

	"projectswitch/internal/logging"
	"projectswitch/internal/terminal"
)

// Default keybindings
const (
	DefaultSwitchProjectKey  = "ctrl+shift+u"
	DefaultManageProjectsKey = "ctrl+shift+i"
	DefaultOpenOverviewKey   = "ctrl+shift+w"
)

// Settings is the full host settings document
type Settings struct {
	Keybindings Keybindings `koanf:"keybindings"`
	Workspace   Workspace   `koanf:"workspace"`
	Terminal    Terminal    `koanf:"terminal"`
	Log         Log         `koanf:"log"`
	Data        Data        `koanf:"data"`
}

// Keybindings are the three host hotkeys
type Keybindings struct {
	SwitchProject  string `koanf:"switch_project" json:"switchProjectHotkey"`
	ManageProjects string `koanf:"manage_projects" json:"manageProjectsHotkey"`
	OpenOverview   string `koanf:"open_overview" json:"openWebOverviewHotkey"`
}

// Workspace configures how folders are opened.
//
// Opener is a command line; {path} is replaced by the folder, or the
// folder is appended when the placeholder is absent. An empty opener
// prints the path instead.
type Workspace struct {
	Opener string `koanf:"opener"`
}

// Terminal configures the terminal host
type Terminal struct {
	Backend   string              `koanf:"backend"`
	Session   string              `koanf:"session"`
	LastState []terminal.Snapshot `koanf:"last_state"`
}

// Log configures logging
type Log struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
	Dir   string `koanf:"dir"`
}

// Data locates the project document
type Data struct {
	Dir string `koanf:"dir"`
}

// Defaults returns settings with every default applied
func Defaults() *Settings {
	s := &Settings{}
	applyDefaults(s)
	return s
}

func applyDefaults(s *Settings) {
	if s.Keybindings.SwitchProject == "" {
		s.Keybindings.SwitchProject = DefaultSwitchProjectKey
	}
	if s.Keybindings.ManageProjects == "" {
		s.Keybindings.ManageProjects = DefaultManageProjectsKey
	}
	if s.Keybindings.OpenOverview == "" {
		s.Keybindings.OpenOverview = DefaultOpenOverviewKey
	}
	if s.Terminal.Backend == "" {
		s.Terminal.Backend = terminal.BackendAuto
	}
	if s.Log.Level == "" {
		s.Log.Level = "info"
	}
}

// Validate checks enumerated values
func (s *Settings) Validate() error {
	switch s.Terminal.Backend {
	case terminal.BackendAuto, terminal.BackendTmux, terminal.BackendITerm, terminal.BackendPTY:
	default:
		return fmt.Errorf("terminal.backend must be one of auto, tmux, iterm, pty: got %q", s.Terminal.Backend)
	}
	if _, ok := logging.ValidLogLevels[strings.ToLower(s.Log.Level)]; !ok {
		return fmt.Errorf("log.level must be one of debug, info, warn, error: got %q", s.Log.Level)
	}
	for _, snap := range s.Terminal.LastState {
		if snap.Name == "" {
			return fmt.Errorf("terminal.last_state: entry without a name")
		}
	}
	return nil
}
