package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// skipStartup marks commands that run without settings or project data
const skipStartup = "skipStartup"

// globalOptions are the persistent flags
type globalOptions struct {
	dataDir    string
	configPath string
	verbose    bool
	jsonOutput bool
}

// cli owns the command tree and the app it starts
type cli struct {
	root *cobra.Command
	opts globalOptions
	app  *App
}

func newCLI() *cli {
	c := &cli{}
	c.root = &cobra.Command{
		Use:     "projectswitch",
		Version: "dev",
		Short:   "Switch between local project folders",
		Long: `projectswitch keeps a list of project folders sorted into groups and
opens one of them on demand.

Projects can ask for the open terminals to be recreated inside the new
project folder when switching.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: c.start,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.flows.Switch(cmd.Context())
		},
	}

	pf := c.root.PersistentFlags()
	pf.StringVar(&c.opts.dataDir, "data-dir", "", "Directory holding projects.json (default ~/.projectswitch)")
	pf.StringVar(&c.opts.configPath, "config", "", "Settings file (default ~/.config/projectswitch/settings.yaml)")
	pf.BoolVarP(&c.opts.verbose, "verbose", "v", false, "Mirror log output to stderr")
	pf.BoolVar(&c.opts.jsonOutput, "json", false, "Output in JSON format")

	c.root.AddGroup(
		&cobra.Group{ID: "switching", Title: "Switching:"},
		&cobra.Group{ID: "management", Title: "Project Management:"},
		&cobra.Group{ID: "host", Title: "Host Integration:"},
		&cobra.Group{ID: "tooling", Title: "CLI & Tooling:"},
	)

	add := func(group string, cmds ...*cobra.Command) {
		for _, cmd := range cmds {
			cmd.GroupID = group
			c.root.AddCommand(cmd)
		}
	}
	add("switching", c.switchCmd(), c.manageCmd(), c.overviewCmd())
	add("management", c.projectCmd(), c.groupCmd())
	add("host", c.hotkeysCmd(), c.terminalCmd())
	add("tooling", c.doctorCmd(), c.versionCmd())
	c.root.SetHelpCommandGroupID("tooling")

	return c
}

func (c *cli) setVersion(v string) {
	if v == "" {
		return
	}
	c.root.Version = v
	c.root.SetVersionTemplate("{{.Version}}\n")
}

// start wires the app before any command that needs it
func (c *cli) start(cmd *cobra.Command, args []string) error {
	if cmd.Annotations[skipStartup] != "" || cmd.Name() == "help" {
		return nil
	}
	c.app = NewApp(c.opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	return c.app.startup(cmd.Context())
}

// execute runs the command line and shuts the app down afterwards
func (c *cli) execute(ctx context.Context) error {
	defer func() {
		if c.app != nil {
			c.app.shutdown()
		}
	}()
	return c.root.ExecuteContext(ctx)
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the projectswitch version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipStartup: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), c.root.Version)
		},
	}
}

// parseSwitch accepts on/off and the usual boolean spellings
func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "yes", "true", "1", "enable", "enabled":
		return true, nil
	case "off", "no", "false", "0", "disable", "disabled":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}
