package main

import (
	"os"

	"projectswitch/internal/overview"
	"projectswitch/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (c *cli) switchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch [name]",
		Short: "Open a project, picking it from the list when no name is given",
		Long: `Open a project folder with the configured opener.

Projects with terminal persistence enabled have the open terminals captured
before the switch and recreated inside the project folder after it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			if len(args) == 1 {
				err = c.app.flows.SwitchTo(ctx, args[0])
			} else {
				err = c.app.flows.Switch(ctx)
			}
			if err != nil {
				return err
			}
			return c.app.attachSessions(ctx)
		},
	}
}

func (c *cli) manageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manage",
		Short: "Add, edit or remove projects and groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.flows.ManageMenu(cmd.Context())
		},
	}
}

func (c *cli) overviewCmd() *cobra.Command {
	var (
		batch  bool
		static bool
	)
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Show every group and project with the hotkey settings",
		Long: `Show the overview of groups, projects and hotkeys.

On a terminal the overview is interactive and refreshes when the project
data changes. With --batch, newline-delimited JSON messages are read from
stdin and dispatched in order, for example:

  {"command":"updatePersistTerminal","projectName":"api","persistTerminal":true}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			var (
				v   overview.View
				err error
			)
			if batch {
				v, err = c.app.dispatcher.RunBatch(ctx, cmd.InOrStdin())
			} else {
				interactive := !static && !c.opts.jsonOutput &&
					term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
				if interactive {
					return tui.NewOverview(c.app.dispatcher, c.app.stateManager.Store().Watch).Run(ctx)
				}
				v, err = c.app.dispatcher.View()
			}
			if err != nil {
				return err
			}

			if c.opts.jsonOutput {
				return printJSON(out, v)
			}
			width := 0
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				width = w
			}
			_, err = out.Write([]byte(overview.Render(v, width) + "\n"))
			return err
		},
	}
	cmd.Flags().BoolVar(&batch, "batch", false, "Read JSON messages from stdin and dispatch them")
	cmd.Flags().BoolVar(&static, "static", false, "Print the overview once instead of running it interactively")
	return cmd
}
