package terminal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"projectswitch/internal/logging"
)

// Snapshot is the recorded identity of one open terminal
type Snapshot struct {
	Name             string   `json:"name" koanf:"name"`
	WorkingDirectory string   `json:"cwd,omitempty" koanf:"cwd"`
	ShellPath        string   `json:"shellPath,omitempty" koanf:"shellPath"`
	ShellArgs        []string `json:"shellArgs,omitempty" koanf:"shellArgs"`
}

// SnapshotStore persists the single global snapshot. Saving replaces the
// previous value.
type SnapshotStore interface {
	LoadTerminalSnapshot() ([]Snapshot, error)
	SaveTerminalSnapshot(snapshots []Snapshot) error
}

// Phase is where a snapshotter is in its capture and restore cycle
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCaptured
	PhaseRestored
)

func (p Phase) String() string {
	switch p {
	case PhaseCaptured:
		return "captured"
	case PhaseRestored:
		return "restored"
	default:
		return "idle"
	}
}

// Snapshotter records the open terminals before a switch and recreates
// them afterwards
type Snapshotter struct {
	host  Host
	store SnapshotStore

	mu    sync.Mutex
	phase Phase
}

// NewSnapshotter creates a snapshotter over host and store
func NewSnapshotter(host Host, store SnapshotStore) *Snapshotter {
	return &Snapshotter{host: host, store: store}
}

// Phase returns the current phase
func (s *Snapshotter) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Capture records every open terminal in host order, replacing any
// previous snapshot. With no open terminals an empty snapshot is saved.
func (s *Snapshotter) Capture(ctx context.Context) ([]Snapshot, error) {
	sessions, err := s.host.Sessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list terminals: %w", err)
	}

	snapshots := make([]Snapshot, 0, len(sessions))
	for _, sess := range sessions {
		snapshots = append(snapshots, Snapshot{
			Name:             sess.Name,
			WorkingDirectory: sess.WorkingDirectory,
			ShellPath:        sess.ShellPath,
			ShellArgs:        sess.ShellArgs,
		})
	}

	if err := s.store.SaveTerminalSnapshot(snapshots); err != nil {
		return nil, fmt.Errorf("failed to save terminal snapshot: %w", err)
	}

	s.mu.Lock()
	s.phase = PhaseCaptured
	s.mu.Unlock()

	logging.Info("Terminal state captured", "count", len(snapshots))
	return snapshots, nil
}

// Restore opens one terminal per snapshot entry, in order, with its
// working directory forced to targetPath. The stored snapshot is left
// untouched. Terminals that fail to open do not stop the others.
func (s *Snapshotter) Restore(ctx context.Context, targetPath string) ([]Session, error) {
	snapshots, err := s.store.LoadTerminalSnapshot()
	if err != nil {
		return nil, fmt.Errorf("failed to load terminal snapshot: %w", err)
	}

	var (
		opened []Session
		errs   []error
	)
	for _, snap := range snapshots {
		sess, err := s.host.Open(ctx, Options{
			Name:             snap.Name,
			WorkingDirectory: targetPath,
			ShellPath:        snap.ShellPath,
			ShellArgs:        snap.ShellArgs,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("terminal %q: %w", snap.Name, err))
			continue
		}
		opened = append(opened, sess)
	}

	s.mu.Lock()
	s.phase = PhaseRestored
	s.mu.Unlock()

	logging.Info("Terminal state restored", "count", len(opened), "failed", len(errs), "cwd", logging.MaskPath(targetPath))
	return opened, errors.Join(errs...)
}

// Finish returns the snapshotter to idle once the switch is complete
func (s *Snapshotter) Finish() {
	s.mu.Lock()
	s.phase = PhaseIdle
	s.mu.Unlock()
}
