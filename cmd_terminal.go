package main

import (
	"os"
	"strings"

	"projectswitch/internal/terminal"

	"github.com/spf13/cobra"
)

func (c *cli) terminalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "terminal",
		Aliases: []string{"term"},
		Short:   "Capture and restore the open terminals",
	}
	cmd.AddCommand(c.terminalCaptureCmd(), c.terminalRestoreCmd(), c.terminalShowCmd())
	return cmd
}

func (c *cli) terminalCaptureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "capture",
		Short: "Save the open terminals as the terminal snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := c.app.snapshotter.Capture(cmd.Context())
			if err != nil {
				return err
			}
			defer c.app.snapshotter.Finish()
			return c.printSnapshots(cmd, snapshots)
		},
	}
}

func (c *cli) terminalRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [path]",
		Short: "Open the saved terminals in path (default: the current folder)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, err := os.Getwd()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				path = args[0]
			}

			defer c.app.snapshotter.Finish()
			sessions, err := c.app.snapshotter.Restore(ctx, path)
			for _, s := range sessions {
				c.app.notify.Info("Opened terminal '%s' in %s", s.Name, s.WorkingDirectory)
			}
			if err != nil {
				if len(sessions) == 0 {
					return err
				}
				for _, e := range unjoin(err) {
					c.app.notify.Warn("%v", e)
				}
			}
			return c.app.attachSessions(ctx)
		},
	}
}

func (c *cli) terminalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the saved terminal snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshots, err := c.app.settingsStore.LoadTerminalSnapshot()
			if err != nil {
				return err
			}
			return c.printSnapshots(cmd, snapshots)
		},
	}
}

func (c *cli) printSnapshots(cmd *cobra.Command, snapshots []terminal.Snapshot) error {
	out := cmd.OutOrStdout()
	if c.opts.jsonOutput {
		if snapshots == nil {
			snapshots = []terminal.Snapshot{}
		}
		return printJSON(out, snapshots)
	}
	if len(snapshots) == 0 {
		printEmpty(out, "No terminals saved.")
		return nil
	}

	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		shell := strings.TrimSpace(s.ShellPath + " " + strings.Join(s.ShellArgs, " "))
		rows = append(rows, []string{s.Name, s.WorkingDirectory, shell})
	}
	printTable(out, []string{"NAME", "CWD", "SHELL"}, rows)
	return nil
}

// unjoin splits an errors.Join result into its parts
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
