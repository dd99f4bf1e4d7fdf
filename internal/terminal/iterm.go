package terminal

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"projectswitch/internal/logging"
)

// listTabsScript prints one line per iTerm2 tab: session id, session name
// and the working directory reported by shell integration, tab separated.
// Nothing is printed when iTerm2 is not running.
const listTabsScript = `
if application "iTerm2" is running then
	tell application "iTerm2"
		set output to ""
		repeat with w in windows
			repeat with t in tabs of w
				set sess to current session of t
				set sessPath to ""
				try
					set sessPath to (variable named "session.path") of sess
				end try
				set output to output & (id of sess) & tab & (name of sess) & tab & sessPath & linefeed
			end repeat
		end repeat
		return output
	end tell
end if
return ""
`

// ITerm hosts sessions as tabs of iTerm2, driven through AppleScript
type ITerm struct {
	run func(ctx context.Context, script string) (string, error)
}

// NewITerm returns a host that talks to iTerm2 with osascript
func NewITerm() *ITerm {
	return &ITerm{run: runAppleScript}
}

func runAppleScript(ctx context.Context, script string) (string, error) {
	// Write script to temp file to avoid -e escaping issues
	tmpFile, err := os.CreateTemp("", "applescript-*.scpt")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(script); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to write script: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write script: %w", err)
	}

	output, err := exec.CommandContext(ctx, "osascript", tmpFile.Name()).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("AppleScript error: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// Sessions lists the current session of every tab
func (h *ITerm) Sessions(ctx context.Context) ([]Session, error) {
	out, err := h.run(ctx, listTabsScript)
	if err != nil {
		logging.Error("Failed to list iTerm2 tabs", "error", err)
		return nil, err
	}
	return parseITermTabs(out), nil
}

// parseITermTabs reads listTabsScript output
func parseITermTabs(out string) []Session {
	var sessions []Session
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 3)
		for len(fields) < 3 {
			fields = append(fields, "")
		}
		sessions = append(sessions, Session{
			ID:               fields[0],
			Name:             tabTitle(fields[1]),
			WorkingDirectory: strings.TrimSpace(fields[2]),
		})
	}
	return sessions
}

// tabTitle strips the " (process)" suffix iTerm2 appends to session names
func tabTitle(name string) string {
	if i := strings.Index(name, " ("); i > 0 {
		return name[:i]
	}
	return name
}

// Open creates a tab in the front window, changes to the working
// directory and, with a shell path, replaces the login shell with it
func (h *ITerm) Open(ctx context.Context, opts Options) (Session, error) {
	command := "clear"
	if opts.WorkingDirectory != "" {
		command = "cd " + shellQuote(opts.WorkingDirectory) + " && clear"
	}
	if opts.ShellPath != "" {
		argv := append([]string{opts.ShellPath}, opts.ShellArgs...)
		for i, a := range argv {
			argv[i] = shellQuote(a)
		}
		command += " && exec " + strings.Join(argv, " ")
	}

	script := fmt.Sprintf(`
tell application "iTerm2"
	if (count of windows) is 0 then
		create window with default profile
	end if
	tell current window
		create tab with default profile
		tell current session
			set name to %s
			write text %s
			return id
		end tell
	end tell
end tell
`, appleQuote(opts.Name), appleQuote(command))

	out, err := h.run(ctx, script)
	if err != nil {
		logging.Error("Failed to create iTerm2 tab", "name", opts.Name, "cwd", logging.MaskPath(opts.WorkingDirectory), "error", err)
		return Session{}, err
	}

	s := Session{
		ID:               strings.TrimSpace(out),
		Name:             opts.Name,
		WorkingDirectory: opts.WorkingDirectory,
		ShellPath:        opts.ShellPath,
		ShellArgs:        opts.ShellArgs,
	}
	logging.Info("iTerm2 tab opened", "id", s.ID, "name", s.Name, "cwd", logging.MaskPath(s.WorkingDirectory))
	return s, nil
}

// shellQuote wraps s in single quotes for a POSIX shell
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// appleQuote makes s an AppleScript string literal. Line breaks are dropped.
func appleQuote(s string) string {
	r := strings.NewReplacer("\n", "", "\r", "", `\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
