// Package git reads the branch and working tree state of project folders
// for display next to listings.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every git invocation
const DefaultTimeout = 2 * time.Second

// ChangedFile represents a file with changes
type ChangedFile struct {
	Path   string `json:"path"`
	Status string `json:"status"` // M = modified, A = added, D = deleted, ? = untracked
	Staged bool   `json:"staged"`
}

// Summary is the decoration shown for a project folder
type Summary struct {
	Branch    string `json:"branch"`
	Staged    int    `json:"staged"`
	Unstaged  int    `json:"unstaged"`
	Untracked int    `json:"untracked"`
}

// Dirty reports whether anything is uncommitted
func (s Summary) Dirty() bool {
	return s.Staged+s.Unstaged+s.Untracked > 0
}

// String renders the summary as "branch +staged ~unstaged ?untracked",
// leaving out zero counts
func (s Summary) String() string {
	parts := []string{s.Branch}
	if s.Branch == "" {
		parts[0] = "(detached)"
	}
	if s.Staged > 0 {
		parts = append(parts, fmt.Sprintf("+%d", s.Staged))
	}
	if s.Unstaged > 0 {
		parts = append(parts, fmt.Sprintf("~%d", s.Unstaged))
	}
	if s.Untracked > 0 {
		parts = append(parts, fmt.Sprintf("?%d", s.Untracked))
	}
	return strings.Join(parts, " ")
}

// Manager handles git operations
type Manager struct {
	timeout time.Duration
}

// NewManager creates a new git manager
func NewManager() *Manager {
	return &Manager{timeout: DefaultTimeout}
}

func (m *Manager) output(ctx context.Context, path string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", path}, args...)...)
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// IsRepo checks if the path is inside a git work tree
func (m *Manager) IsRepo(ctx context.Context, path string) bool {
	out, err := m.output(ctx, path, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// ChangedFiles returns staged, unstaged and untracked files. A file with
// both staged and unstaged changes is reported once, as staged.
func (m *Manager) ChangedFiles(ctx context.Context, path string) ([]ChangedFile, error) {
	var files []ChangedFile
	seen := make(map[string]bool)

	staged, err := m.output(ctx, path, "diff", "--cached", "--name-status")
	if err != nil {
		return nil, err
	}
	for _, f := range parseNameStatus(staged, true) {
		seen[f.Path] = true
		files = append(files, f)
	}

	unstaged, err := m.output(ctx, path, "diff", "--name-status")
	if err != nil {
		return nil, err
	}
	for _, f := range parseNameStatus(unstaged, false) {
		if !seen[f.Path] {
			files = append(files, f)
		}
	}

	untracked, err := m.output(ctx, path, "ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	for _, line := range strings.Split(untracked, "\n") {
		if line == "" {
			continue
		}
		files = append(files, ChangedFile{Path: line, Status: "?"})
	}

	return files, nil
}

func parseNameStatus(out string, staged bool) []ChangedFile {
	var files []ChangedFile
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}
		// renames list old and new path; keep the new one
		files = append(files, ChangedFile{
			Path:   parts[len(parts)-1],
			Status: parts[0][:1],
			Staged: staged,
		})
	}
	return files
}

// CurrentBranch returns the current branch name, empty when detached
func (m *Manager) CurrentBranch(ctx context.Context, path string) string {
	out, err := m.output(ctx, path, "branch", "--show-current")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// Summarize returns the decoration for path. ok is false when path is not
// a git work tree.
func (m *Manager) Summarize(ctx context.Context, path string) (Summary, bool) {
	if !m.IsRepo(ctx, path) {
		return Summary{}, false
	}

	s := Summary{Branch: m.CurrentBranch(ctx, path)}
	files, err := m.ChangedFiles(ctx, path)
	if err != nil {
		return s, true
	}
	for _, f := range files {
		switch {
		case f.Status == "?":
			s.Untracked++
		case f.Staged:
			s.Staged++
		default:
			s.Unstaged++
		}
	}
	return s, true
}
