package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"projectswitch/internal/state"

	"github.com/spf13/cobra"
)

// autoConfirm answers yes without asking
type autoConfirm struct{}

func (autoConfirm) Confirm(ctx context.Context, question string) (bool, error) {
	return true, nil
}

func (c *cli) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(c.projectAddCmd(), c.projectEditCmd(), c.projectRmCmd(), c.projectLsCmd(), c.projectPersistCmd())
	return cmd
}

func (c *cli) projectAddCmd() *cobra.Command {
	var (
		name        string
		path        string
		description string
		group       string
		persist     bool
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project, asking for each field unless --name is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if name == "" {
				return c.app.flows.AddProject(ctx)
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("invalid path %q: %w", path, err)
			}

			m := c.app.stateManager
			groups, err := m.Groups()
			if err != nil {
				return err
			}

			var groupID string
			switch {
			case group != "":
				g, err := m.FindGroupByName(group)
				if err != nil {
					return err
				}
				groupID = g.ID
			case len(groups) > 0:
				a, err := m.SelectGroupForAssignment(ctx, c.app.prompter)
				if err != nil {
					return err
				}
				groupID = a.GroupID
			}

			if _, err := m.AddProject(state.NewProject{
				Name:            name,
				Path:            abs,
				Description:     description,
				GroupID:         groupID,
				PersistTerminal: persist,
			}); err != nil {
				return err
			}
			if len(groups) == 0 {
				c.app.notify.Info("Created a default group as no groups existed.")
			}
			c.app.notify.Info("Project '%s' added successfully!", name)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "Project name")
	f.StringVar(&path, "path", ".", "Project folder")
	f.StringVar(&description, "description", "", "Project description")
	f.StringVar(&group, "group", "", "Group name")
	f.BoolVar(&persist, "persist", false, "Persist terminals when switching to the project")
	return cmd
}

func (c *cli) projectEditCmd() *cobra.Command {
	var (
		newName     string
		description string
		group       string
		persist     bool
	)
	cmd := &cobra.Command{
		Use:   "edit [name]",
		Short: "Edit a project, asking for each field unless flags are given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			f := cmd.Flags()
			direct := f.Changed("name") || f.Changed("description") || f.Changed("group") || f.Changed("persist")
			if name == "" || !direct {
				return c.app.flows.EditProject(cmd.Context(), name)
			}

			m := c.app.stateManager
			var upd state.ProjectUpdate
			if f.Changed("name") {
				upd.Name = &newName
			}
			if f.Changed("description") {
				upd.Description = &description
			}
			if f.Changed("persist") {
				upd.PersistTerminal = &persist
			}
			if f.Changed("group") {
				g, err := m.FindGroupByName(group)
				if err != nil {
					return err
				}
				upd.GroupID = &g.ID
			}

			if _, err := m.EditProject(name, upd); err != nil {
				return err
			}
			c.app.notify.Info("Project '%s' updated successfully!", name)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&newName, "name", "", "New project name")
	f.StringVar(&description, "description", "", "New project description")
	f.StringVar(&group, "group", "", "Move the project to this group")
	f.BoolVar(&persist, "persist", false, "Persist terminals when switching to the project")
	return cmd
}

func (c *cli) projectRmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "rm [name]",
		Aliases: []string{"remove"},
		Short:   "Remove every project with the given name",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || !yes {
				name := ""
				if len(args) == 1 {
					name = args[0]
				}
				return c.app.flows.DeleteProject(cmd.Context(), name)
			}

			n, err := c.app.stateManager.DeleteProject(cmd.Context(), args[0], autoConfirm{})
			if err != nil {
				return err
			}
			c.app.notify.Info("Project '%s' deleted from the Switch!", args[0])
			if n > 1 {
				c.app.notify.Warn("%d projects shared that name and were all removed.", n)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (c *cli) projectLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			data, err := c.app.stateManager.Data()
			if err != nil {
				return err
			}
			if c.opts.jsonOutput {
				return printJSON(out, data.Projects)
			}
			if len(data.Projects) == 0 {
				printEmpty(out, "No projects yet.")
				return nil
			}

			rows := make([][]string, 0, len(data.Projects))
			for _, p := range data.Projects {
				rows = append(rows, []string{
					p.Name,
					data.GroupName(p.GroupID),
					p.Path,
					strconv.FormatBool(p.PersistTerminal),
					c.app.decorate(p.Path),
				})
			}
			printTable(out, []string{"NAME", "GROUP", "PATH", "PERSIST", "GIT"}, rows)
			return nil
		},
	}
}

func (c *cli) projectPersistCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "persist <name> <on|off>",
		Short: "Turn terminal persistence on or off for a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			persist, err := parseSwitch(args[1])
			if err != nil {
				return err
			}
			return c.app.flows.SetPersistTerminal(args[0], persist)
		},
	}
}
