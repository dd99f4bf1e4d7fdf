package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"projectswitch/internal/flow"
	"projectswitch/internal/git"
	"projectswitch/internal/logging"
	"projectswitch/internal/overview"
	"projectswitch/internal/settings"
	"projectswitch/internal/state"
	"projectswitch/internal/terminal"
	"projectswitch/internal/tui"
	"projectswitch/internal/workspace"

	"golang.org/x/term"
)

// App struct
type App struct {
	ctx           context.Context
	opts          globalOptions
	out           io.Writer
	notify        consoleNotifier
	settingsStore *settings.Store
	settings      *settings.Settings
	stateManager  *state.Manager
	terminalHost  terminal.Host
	ptyManager    *terminal.Manager
	snapshotter   *terminal.Snapshotter
	workspace     *workspace.Local
	gitManager    *git.Manager
	prompter      *tui.Prompter
	flows         *flow.Flows
	dispatcher    *overview.Dispatcher
}

// NewApp creates a new App. Command output goes to out, notifications to
// errOut.
func NewApp(opts globalOptions, out, errOut io.Writer) *App {
	return &App{
		opts:   opts,
		out:    out,
		notify: consoleNotifier{out: errOut},
	}
}

// startup loads settings and wires every component
func (a *App) startup(ctx context.Context) error {
	a.ctx = ctx

	configPath := a.opts.configPath
	if configPath == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to locate settings: %w", err)
		}
		configPath = p
	}
	a.settingsStore = settings.NewStore(configPath)

	cfg, err := a.settingsStore.Load()
	if err != nil {
		return err
	}
	a.settings = cfg

	// Initialize logger first
	logCfg := logging.DefaultConfig()
	if cfg.Log.Dir != "" {
		logCfg.LogDir = cfg.Log.Dir
	}
	logCfg.Level = cfg.Log.Level
	logCfg.JSONOutput = cfg.Log.JSON
	logCfg.Verbose = a.opts.verbose
	if err := logging.Init(logCfg); err != nil {
		a.notify.Warn("Logging unavailable: %v", err)
	}
	logging.Info("Application starting", "version", version, "config", logging.MaskPath(configPath))

	dataDir, err := a.dataDir()
	if err != nil {
		return err
	}
	a.stateManager = state.NewManager(state.NewStore(filepath.Join(dataDir, state.DataFileName)))

	a.terminalHost = terminal.NewHost(cfg.Terminal.Backend)
	switch host := a.terminalHost.(type) {
	case *terminal.Tmux:
		host.Target = cfg.Terminal.Session
		logging.Debug("Terminal host", "backend", terminal.BackendTmux, "session", host.Target)
	case *terminal.ITerm:
		logging.Debug("Terminal host", "backend", terminal.BackendITerm)
	case *terminal.Manager:
		a.ptyManager = host
		host.SetExitHandler(func(id string) {
			logging.Debug("Terminal session ended", "id", id)
		})
		logging.Debug("Terminal host", "backend", terminal.BackendPTY)
	}

	a.workspace = workspace.NewLocal(a.terminalHost, cfg.Workspace.Opener, a.out)
	a.snapshotter = terminal.NewSnapshotter(a.terminalHost, a.settingsStore)
	a.gitManager = git.NewManager()

	a.prompter = tui.NewPrompter()
	if wd, err := os.Getwd(); err == nil {
		a.prompter.StartDir = wd
	}

	a.flows = flow.New(a.stateManager, a.prompter, a.workspace, a.snapshotter, a.notify)
	a.dispatcher = overview.NewDispatcher(a.flows, a.settingsStore, a.stateManager, a.decorate, a.notify)
	return nil
}

// shutdown closes in-process terminals and the log file
func (a *App) shutdown() {
	if a.ptyManager != nil {
		a.ptyManager.CloseAll()
	}
	logging.Info("Application stopping")
	logging.Close()
}

// dataDir resolves the document directory: flag, then settings (including
// PROJECTSWITCH_DATA_DIR), then ~/.projectswitch
func (a *App) dataDir() (string, error) {
	if a.opts.dataDir != "" {
		return a.opts.dataDir, nil
	}
	if a.settings.Data.Dir != "" {
		return a.settings.Data.Dir, nil
	}
	p, err := state.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("failed to locate project data: %w", err)
	}
	return filepath.Dir(p), nil
}

// decorate labels a project folder with its git state
func (a *App) decorate(path string) string {
	summary, ok := a.gitManager.Summarize(a.ctx, path)
	if !ok {
		return ""
	}
	return summary.String()
}

// attachSessions hands the terminal to each in-process session in turn.
// Tmux windows and iTerm2 tabs outlive this process and need no attaching.
func (a *App) attachSessions(ctx context.Context) error {
	if a.ptyManager == nil || !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	for _, t := range a.ptyManager.List() {
		logging.Debug("Attaching terminal", "id", t.ID, "name", t.Name)
		if err := a.ptyManager.Attach(ctx, t.ID, os.Stdin, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
