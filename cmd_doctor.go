package main

import (
	"fmt"
	"os"
	"os/exec"

	"projectswitch/internal/state"
	"projectswitch/internal/terminal"
	"projectswitch/internal/workspace"

	"github.com/spf13/cobra"
)

// check is one doctor finding
type check struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

func (c *cli) doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the project data, settings and host tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := c.runChecks()

			out := cmd.OutOrStdout()
			if c.opts.jsonOutput {
				if err := printJSON(out, checks); err != nil {
					return err
				}
			} else {
				for _, ch := range checks {
					if ch.OK {
						_, _ = successColor.Fprintf(out, "✓ %s", ch.Name)
					} else {
						_, _ = errorColor.Fprintf(out, "✗ %s", ch.Name)
					}
					if ch.Detail != "" {
						_, _ = valueColor.Fprintf(out, "  %s", ch.Detail)
					}
					fmt.Fprintln(out)
				}
			}

			failed := 0
			for _, ch := range checks {
				if !ch.OK {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("doctor found %d problem(s)", failed)
			}
			return nil
		},
	}
}

func (c *cli) runChecks() []check {
	a := c.app
	var checks []check

	path := a.stateManager.Store().Path()
	data, err := a.stateManager.Data()
	if err != nil {
		checks = append(checks, check{Name: "project data", Detail: err.Error()})
	} else {
		checks = append(checks, check{
			Name:   "project data",
			OK:     true,
			Detail: fmt.Sprintf("%s: %d project(s), %d group(s)", path, len(data.Projects), len(data.Groups)),
		})
		if err := state.Validate(data); err != nil {
			checks = append(checks, check{Name: "group references", Detail: err.Error()})
		} else {
			checks = append(checks, check{Name: "group references", OK: true})
		}

		missing := 0
		for _, p := range data.Projects {
			if info, err := os.Stat(p.Path); err != nil || !info.IsDir() {
				missing++
				checks = append(checks, check{Name: "project folder", Detail: fmt.Sprintf("%s: %s is not a folder", p.Name, p.Path)})
			}
		}
		if missing == 0 {
			checks = append(checks, check{Name: "project folders", OK: true})
		}
	}

	checks = append(checks, check{Name: "settings", OK: true, Detail: a.settingsStore.Path()})

	switch a.terminalHost.(type) {
	case *terminal.Tmux:
		if _, err := exec.LookPath("tmux"); err != nil {
			checks = append(checks, check{Name: "terminal host", Detail: "tmux selected but not installed"})
		} else {
			checks = append(checks, check{Name: "terminal host", OK: true, Detail: terminal.BackendTmux})
		}
	case *terminal.ITerm:
		if _, err := exec.LookPath("osascript"); err != nil {
			checks = append(checks, check{Name: "terminal host", Detail: "iterm selected but osascript is missing"})
		} else {
			checks = append(checks, check{Name: "terminal host", OK: true, Detail: terminal.BackendITerm})
		}
	default:
		checks = append(checks, check{Name: "terminal host", OK: true, Detail: terminal.BackendPTY})
	}

	if opener := a.settings.Workspace.Opener; opener != "" {
		argv := workspace.OpenerCommand(opener, "")
		if _, err := exec.LookPath(argv[0]); err != nil {
			checks = append(checks, check{Name: "workspace opener", Detail: fmt.Sprintf("%s not found in PATH", argv[0])})
		} else {
			checks = append(checks, check{Name: "workspace opener", OK: true, Detail: opener})
		}
	}

	if _, err := exec.LookPath("git"); err != nil {
		checks = append(checks, check{Name: "git", OK: true, Detail: "not installed; listings show no branch"})
	} else {
		checks = append(checks, check{Name: "git", OK: true})
	}

	return checks
}
