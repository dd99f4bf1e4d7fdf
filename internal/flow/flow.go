// Package flow runs the multi-step interactive commands: switching to a
// project and the project and group management menus.
//
// A prompt that returns ErrCancelled aborts the whole flow before anything
// is saved. An empty but submitted answer in an edit step keeps the old
// value.
package flow

import (
	"context"
	"errors"
	"fmt"

	"projectswitch/internal/prompt"
	"projectswitch/internal/state"
	"projectswitch/internal/terminal"
	"projectswitch/internal/workspace"
)

// Manage menu actions, in display order
const (
	ActionAddProject    = "Add Project"
	ActionEditProject   = "Edit Project"
	ActionRemoveProject = "Remove Project"
	ActionAddGroup      = "Add Group"
	ActionEditGroup     = "Edit Group"
	ActionRemoveGroup   = "Remove Group"
)

// PersistQuestion is asked when adding or editing a project
const PersistQuestion = "Persist the terminals content when switching projects?"

// Notifier shows short messages to the user
type Notifier interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// Flows wires the managers to the prompts and the workspace
type Flows struct {
	manager     *state.Manager
	prompts     prompt.Prompter
	workspace   workspace.Workspace
	snapshotter *terminal.Snapshotter
	notify      Notifier
}

// New creates the flows
func New(manager *state.Manager, prompts prompt.Prompter, ws workspace.Workspace, snapshotter *terminal.Snapshotter, notify Notifier) *Flows {
	return &Flows{
		manager:     manager,
		prompts:     prompts,
		workspace:   ws,
		snapshotter: snapshotter,
		notify:      notify,
	}
}

// Manager returns the project manager
func (f *Flows) Manager() *state.Manager {
	return f.manager
}

// ManageMenu asks for an action and runs it
func (f *Flows) ManageMenu(ctx context.Context) error {
	item, err := f.prompts.Pick(ctx, "What do you want to do?", prompt.Choices(
		ActionAddProject,
		ActionEditProject,
		ActionRemoveProject,
		ActionAddGroup,
		ActionEditGroup,
		ActionRemoveGroup,
	))
	if err != nil {
		return err
	}

	switch item.Value {
	case ActionAddProject:
		return f.AddProject(ctx)
	case ActionEditProject:
		return f.EditProject(ctx, "")
	case ActionRemoveProject:
		return f.DeleteProject(ctx, "")
	case ActionAddGroup:
		return f.AddGroup(ctx)
	case ActionEditGroup:
		return f.EditGroup(ctx, "")
	case ActionRemoveGroup:
		return f.DeleteGroup(ctx, "")
	}
	return fmt.Errorf("unknown action %q", item.Value)
}

// required asks for text and treats an empty answer as a cancel
func (f *Flows) required(ctx context.Context, field prompt.Field) (string, error) {
	v, err := f.prompts.Input(ctx, field)
	if err != nil {
		return "", err
	}
	if v == "" {
		return "", state.ErrCancelled
	}
	return v, nil
}

// pickName offers names and returns the chosen one
func (f *Flows) pickName(ctx context.Context, title string, names []string) (string, error) {
	if len(names) == 0 {
		return "", fmt.Errorf("nothing to choose from: %w", state.ErrNotFound)
	}
	item, err := f.prompts.Pick(ctx, title, prompt.Choices(names...))
	if err != nil {
		return "", err
	}
	if item.Value == "" {
		return "", state.ErrCancelled
	}
	return item.Value, nil
}

// IsCancelled reports whether err is a user abort
func IsCancelled(err error) bool {
	return errors.Is(err, state.ErrCancelled)
}
