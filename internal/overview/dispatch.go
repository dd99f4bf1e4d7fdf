package overview

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"projectswitch/internal/logging"
	"projectswitch/internal/settings"
	"projectswitch/internal/state"
)

// Actions runs the interactive handlers. *flow.Flows implements it.
type Actions interface {
	AddProject(ctx context.Context) error
	EditProject(ctx context.Context, name string) error
	DeleteProject(ctx context.Context, name string) error
	AddGroup(ctx context.Context) error
	EditGroup(ctx context.Context, groupName string) error
	DeleteGroup(ctx context.Context, groupName string) error
	SetPersistTerminal(name string, persist bool) error
}

// Hotkeys reads and saves keybindings. *settings.Store implements it.
type Hotkeys interface {
	Load() (*settings.Settings, error)
	SaveKeybindings(kb settings.Keybindings) error
}

// Notifier shows short messages to the user
type Notifier interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// Dispatcher routes messages to handlers
type Dispatcher struct {
	actions  Actions
	hotkeys  Hotkeys
	manager  *state.Manager
	decorate Decorator
	notify   Notifier
}

// NewDispatcher creates a dispatcher. decorate may be nil.
func NewDispatcher(actions Actions, hotkeys Hotkeys, manager *state.Manager, decorate Decorator, notify Notifier) *Dispatcher {
	return &Dispatcher{
		actions:  actions,
		hotkeys:  hotkeys,
		manager:  manager,
		decorate: decorate,
		notify:   notify,
	}
}

// View builds the current view from storage
func (d *Dispatcher) View() (View, error) {
	data, err := d.manager.Data()
	if err != nil {
		return View{}, err
	}
	cfg, err := d.hotkeys.Load()
	if err != nil {
		return View{}, err
	}
	return Build(data, cfg.Keybindings, d.decorate), nil
}

// Dispatch runs the handler for msg and returns the rebuilt view. A
// cancelled handler is not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) (View, error) {
	if err := msg.Validate(); err != nil {
		return View{}, err
	}

	logging.Debug("Overview message", "command", string(msg.Command))
	err := d.handle(ctx, msg)
	if errors.Is(err, state.ErrCancelled) {
		err = nil
	}

	v, viewErr := d.View()
	if err != nil {
		return v, err
	}
	return v, viewErr
}

func (d *Dispatcher) handle(ctx context.Context, msg Message) error {
	switch msg.Command {
	case CmdAddProject:
		return d.actions.AddProject(ctx)
	case CmdEditProject:
		return d.actions.EditProject(ctx, msg.ProjectName)
	case CmdDeleteProject:
		return d.actions.DeleteProject(ctx, msg.ProjectName)
	case CmdAddGroup:
		return d.actions.AddGroup(ctx)
	case CmdEditGroup:
		return d.actions.EditGroup(ctx, msg.GroupName)
	case CmdDeleteGroup:
		return d.actions.DeleteGroup(ctx, msg.GroupName)
	case CmdSaveHotkeys:
		return d.saveHotkeys(msg)
	case CmdUpdatePersistTerminal:
		return d.actions.SetPersistTerminal(msg.ProjectName, *msg.PersistTerminal)
	}
	return fmt.Errorf("%w: unknown command %q", ErrInvalidMessage, msg.Command)
}

func (d *Dispatcher) saveHotkeys(msg Message) error {
	kb := settings.Keybindings{
		SwitchProject:  msg.SwitchProjectHotkey,
		ManageProjects: msg.ManageProjectsHotkey,
		OpenOverview:   msg.OpenWebOverviewHotkey,
	}
	if err := d.hotkeys.SaveKeybindings(kb); err != nil {
		return err
	}
	d.notify.Info("Hotkeys updated successfully. Reload your key bindings for changes to take effect.")
	return nil
}

// RunBatch reads newline-delimited JSON messages from r and dispatches
// each one. Invalid lines and handler failures are reported and skipped.
// The final view is returned.
func (d *Dispatcher) RunBatch(ctx context.Context, r io.Reader) (View, error) {
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		msg, err := Decode(raw)
		if err != nil {
			d.notify.Warn("line %d: %v", line, err)
			continue
		}
		if _, err := d.Dispatch(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return View{}, ctx.Err()
			}
			d.notify.Warn("line %d: %s: %v", line, msg.Command, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return View{}, fmt.Errorf("failed to read messages: %w", err)
	}
	return d.View()
}
