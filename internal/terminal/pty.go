package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"projectswitch/internal/logging"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"golang.org/x/term"
)

// Terminal is a PTY session owned by this process
type Terminal struct {
	ID        string
	Name      string
	WorkDir   string
	ShellPath string
	ShellArgs []string
	Pty       *os.File
	Cmd       *exec.Cmd

	mu      sync.Mutex
	running bool
	sink    io.Writer
	done    chan struct{}
}

// Manager manages PTY sessions in creation order
type Manager struct {
	terminals []*Terminal
	mu        sync.RWMutex
	onExit    func(id string)
}

// NewManager creates a new terminal manager
func NewManager() *Manager {
	return &Manager{}
}

// SetExitHandler sets the callback for session exit
func (m *Manager) SetExitHandler(handler func(id string)) {
	m.mu.Lock()
	m.onExit = handler
	m.mu.Unlock()
}

// Create starts a shell in a new PTY. Without a shell path the user's login
// shell is started with -l.
func (m *Manager) Create(opts Options) (*Terminal, error) {
	shell, args := opts.ShellPath, opts.ShellArgs
	if shell == "" {
		shell = defaultShell()
		if args == nil {
			args = []string{"-l"}
		}
	}

	cmd := exec.Command(shell, args...)
	cmd.Dir = opts.WorkingDirectory
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
	)

	id := uuid.New().String()
	ptmx, err := pty.Start(cmd)
	if err != nil {
		logging.Error("Failed to start PTY", "id", id, "workDir", logging.MaskPath(opts.WorkingDirectory), "error", err)
		return nil, fmt.Errorf("failed to start %s: %w", shell, err)
	}

	pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80})

	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("Terminal %d", m.count()+1)
	}

	t := &Terminal{
		ID:        id,
		Name:      name,
		WorkDir:   opts.WorkingDirectory,
		ShellPath: opts.ShellPath,
		ShellArgs: opts.ShellArgs,
		Pty:       ptmx,
		Cmd:       cmd,
		running:   true,
		done:      make(chan struct{}),
	}

	m.mu.Lock()
	m.terminals = append(m.terminals, t)
	onExit := m.onExit
	m.mu.Unlock()

	go t.readOutput()
	go t.waitForExit(onExit)

	logging.Info("Terminal created", "id", t.ID, "name", t.Name, "workDir", logging.MaskPath(t.WorkDir))
	return t, nil
}

func (m *Manager) count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.terminals)
}

// Get returns a terminal by ID
func (m *Manager) Get(id string) *Terminal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.terminals {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// List returns all terminals in creation order
func (m *Manager) List() []*Terminal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*Terminal, len(m.terminals))
	copy(list, m.terminals)
	return list
}

// Sessions implements Host
func (m *Manager) Sessions(ctx context.Context) ([]Session, error) {
	list := m.List()
	sessions := make([]Session, 0, len(list))
	for _, t := range list {
		if t.IsRunning() {
			sessions = append(sessions, t.Session())
		}
	}
	return sessions, nil
}

// Open implements Host
func (m *Manager) Open(ctx context.Context, opts Options) (Session, error) {
	t, err := m.Create(opts)
	if err != nil {
		return Session{}, err
	}
	return t.Session(), nil
}

// Close closes a terminal session
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	var term *Terminal
	for i, t := range m.terminals {
		if t.ID == id {
			term = t
			m.terminals = append(m.terminals[:i], m.terminals[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	if term == nil {
		return nil
	}
	logging.Info("Terminal closed", "id", id)
	return term.Close()
}

// CloseAll closes every session
func (m *Manager) CloseAll() {
	m.mu.Lock()
	terms := m.terminals
	m.terminals = nil
	m.mu.Unlock()

	for _, t := range terms {
		t.Close()
	}
}

// Attach connects in and out to the session until it exits or ctx is done.
// When in is a terminal it is put in raw mode and window size changes are
// forwarded.
func (m *Manager) Attach(ctx context.Context, id string, in *os.File, out io.Writer) error {
	t := m.Get(id)
	if t == nil {
		return fmt.Errorf("terminal not found: %s", id)
	}

	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(fd, oldState)

		resize := make(chan os.Signal, 1)
		signal.Notify(resize, syscall.SIGWINCH)
		defer signal.Stop(resize)
		go func() {
			for range resize {
				_ = pty.InheritSize(in, t.Pty)
			}
		}()
		resize <- syscall.SIGWINCH
	}

	t.setSink(out)
	defer t.setSink(nil)

	go func() {
		_, _ = io.Copy(t.Pty, in)
	}()

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Terminal) setSink(w io.Writer) {
	t.mu.Lock()
	t.sink = w
	t.mu.Unlock()
}

func (t *Terminal) readOutput() {
	buf := make([]byte, 4096)
	for {
		n, err := t.Pty.Read(buf)
		if n > 0 {
			t.mu.Lock()
			sink := t.sink
			t.mu.Unlock()
			if sink != nil {
				_, _ = sink.Write(buf[:n])
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				logging.Debug("PTY read ended", "id", t.ID, "error", err)
			}
			return
		}
	}
}

func (t *Terminal) waitForExit(onExit func(id string)) {
	t.Cmd.Wait()
	t.mu.Lock()
	t.running = false
	t.mu.Unlock()
	close(t.done)
	if onExit != nil {
		onExit(t.ID)
	}
}

// Write writes data to the terminal
func (t *Terminal) Write(data []byte) error {
	_, err := t.Pty.Write(data)
	return err
}

// Done is closed when the shell exits
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

// Close kills the shell and closes the PTY
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Cmd != nil && t.Cmd.Process != nil && t.running {
		t.Cmd.Process.Kill()
	}
	if t.Pty != nil {
		t.Pty.Close()
	}
	return nil
}

// IsRunning returns whether the shell is still alive
func (t *Terminal) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Session describes the terminal the way a Host reports it
func (t *Terminal) Session() Session {
	var args []string
	if t.ShellArgs != nil {
		args = append([]string{}, t.ShellArgs...)
	}
	return Session{
		ID:               t.ID,
		Name:             t.Name,
		WorkingDirectory: t.WorkDir,
		ShellPath:        t.ShellPath,
		ShellArgs:        args,
	}
}
