package main

import (
	"strconv"

	"github.com/spf13/cobra"
)

func (c *cli) groupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "group",
		Aliases: []string{"groups", "g"},
		Short:   "Manage groups",
	}
	cmd.AddCommand(c.groupAddCmd(), c.groupRenameCmd(), c.groupRmCmd(), c.groupLsCmd())
	return cmd
}

func (c *cli) groupAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Add a group",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return c.app.flows.AddGroup(cmd.Context())
			}
			if _, err := c.app.stateManager.AddGroup(args[0]); err != nil {
				return err
			}
			c.app.notify.Info("Group '%s' added successfully!", args[0])
			return nil
		},
	}
}

func (c *cli) groupRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rename [name] [new-name]",
		Aliases: []string{"edit"},
		Short:   "Rename a group",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				name := ""
				if len(args) == 1 {
					name = args[0]
				}
				return c.app.flows.EditGroup(cmd.Context(), name)
			}

			m := c.app.stateManager
			g, err := m.FindGroupByName(args[0])
			if err != nil {
				return err
			}
			if err := m.RenameGroup(g.ID, args[1]); err != nil {
				return err
			}
			c.app.notify.Info("Group '%s' updated successfully!", args[0])
			return nil
		},
	}
}

func (c *cli) groupRmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove"},
		Short:   "Remove a group; its projects become ungrouped",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || !yes {
				name := ""
				if len(args) == 1 {
					name = args[0]
				}
				return c.app.flows.DeleteGroup(cmd.Context(), name)
			}

			m := c.app.stateManager
			g, err := m.FindGroupByName(args[0])
			if err != nil {
				return err
			}
			if err := m.DeleteGroup(g.ID); err != nil {
				return err
			}
			c.app.notify.Info("Group '%s' deleted successfully!", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (c *cli) groupLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List groups with their project counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			data, err := c.app.stateManager.Data()
			if err != nil {
				return err
			}
			if c.opts.jsonOutput {
				return printJSON(out, data.Groups)
			}
			if len(data.Groups) == 0 {
				printEmpty(out, "No groups yet.")
				return nil
			}

			counts := make(map[string]int)
			for _, p := range data.Projects {
				counts[p.GroupID]++
			}
			rows := make([][]string, 0, len(data.Groups))
			for _, g := range data.Groups {
				rows = append(rows, []string{g.ID, g.Name, strconv.Itoa(counts[g.ID])})
			}
			printTable(out, []string{"ID", "NAME", "PROJECTS"}, rows)
			return nil
		},
	}
}
