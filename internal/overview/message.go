// Package overview is the interactive grouped listing. User actions arrive
// as Messages, a Dispatcher runs the matching handler, and the View is
// rebuilt from stored state after every message and rendered by Render.
package overview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Command names a message. The names match the overview's wire format.
type Command string

const (
	CmdAddProject            Command = "addProject"
	CmdEditProject           Command = "editProject"
	CmdDeleteProject         Command = "deleteProject"
	CmdAddGroup              Command = "addGroup"
	CmdEditGroup             Command = "editGroup"
	CmdDeleteGroup           Command = "deleteGroup"
	CmdSaveHotkeys           Command = "saveHotkeys"
	CmdUpdatePersistTerminal Command = "updatePersistTerminal"
)

// ErrInvalidMessage is returned for unknown commands or missing payload
var ErrInvalidMessage = errors.New("invalid message")

// Message is one user action with its payload
type Message struct {
	Command               Command `json:"command"`
	ProjectName           string  `json:"projectName,omitempty"`
	GroupName             string  `json:"groupName,omitempty"`
	SwitchProjectHotkey   string  `json:"switchProjectHotkey,omitempty"`
	ManageProjectsHotkey  string  `json:"manageProjectsHotkey,omitempty"`
	OpenWebOverviewHotkey string  `json:"openWebOverviewHotkey,omitempty"`
	PersistTerminal       *bool   `json:"persistTerminal,omitempty"`
}

// Validate checks the command and its required payload
func (m Message) Validate() error {
	switch m.Command {
	case CmdAddProject, CmdAddGroup, CmdSaveHotkeys:
		return nil
	case CmdEditProject, CmdDeleteProject:
		if m.ProjectName == "" {
			return fmt.Errorf("%w: %s needs projectName", ErrInvalidMessage, m.Command)
		}
	case CmdEditGroup, CmdDeleteGroup:
		if m.GroupName == "" {
			return fmt.Errorf("%w: %s needs groupName", ErrInvalidMessage, m.Command)
		}
	case CmdUpdatePersistTerminal:
		if m.ProjectName == "" || m.PersistTerminal == nil {
			return fmt.Errorf("%w: %s needs projectName and persistTerminal", ErrInvalidMessage, m.Command)
		}
	case "":
		return fmt.Errorf("%w: missing command", ErrInvalidMessage)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrInvalidMessage, m.Command)
	}
	return nil
}

// Decode parses and validates one JSON message
func Decode(raw []byte) (Message, error) {
	var m Message
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if err := m.Validate(); err != nil {
		return Message{}, err
	}
	return m, nil
}
