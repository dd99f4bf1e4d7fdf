package main

import (
	"fmt"
	"strings"

	"projectswitch/internal/logging"
	"projectswitch/internal/settings"

	"github.com/spf13/cobra"
)

func (c *cli) hotkeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hotkeys",
		Aliases: []string{"keys"},
		Short:   "Show or change the host hotkeys",
	}
	cmd.AddCommand(c.hotkeysShowCmd(), c.hotkeysSetCmd(), c.hotkeysTmuxCmd())
	return cmd
}

func (c *cli) hotkeysShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the configured hotkeys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			kb := c.app.settings.Keybindings
			if c.opts.jsonOutput {
				return printJSON(out, kb)
			}
			printLabelValue(out, "Switch Project", kb.SwitchProject)
			printLabelValue(out, "Manage Projects", kb.ManageProjects)
			printLabelValue(out, "Open Overview", kb.OpenOverview)
			return nil
		},
	}
}

func (c *cli) hotkeysSetCmd() *cobra.Command {
	var kb settings.Keybindings
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save new hotkeys; omitted ones keep their binding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if kb == (settings.Keybindings{}) {
				return fmt.Errorf("nothing to set: pass --switch, --manage or --overview")
			}
			for _, k := range []string{kb.SwitchProject, kb.ManageProjects, kb.OpenOverview} {
				if k == "" {
					continue
				}
				if _, err := tmuxKey(k); err != nil {
					logging.Warn("Hotkey cannot be bound in tmux", "key", k, "error", err)
				}
			}
			if err := c.app.settingsStore.SaveKeybindings(kb); err != nil {
				return err
			}
			c.app.notify.Info("Hotkeys updated successfully. Reload your key bindings for changes to take effect.")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&kb.SwitchProject, "switch", "", "Hotkey that opens the project switcher")
	f.StringVar(&kb.ManageProjects, "manage", "", "Hotkey that opens the manage menu")
	f.StringVar(&kb.OpenOverview, "overview", "", "Hotkey that opens the overview")
	return cmd
}

func (c *cli) hotkeysTmuxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tmux",
		Short: "Print tmux bind-key lines for the hotkeys",
		Long: `Print tmux bind-key lines that open the switcher, the manage menu and
the overview in a popup. Load them with:

  projectswitch hotkeys tmux > ~/.config/projectswitch/keys.tmux
  tmux source-file ~/.config/projectswitch/keys.tmux`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := tmuxBindings(c.root.Name(), c.app.settings.Keybindings)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))
			return err
		},
	}
}

// tmuxBindings renders one popup binding per hotkey
func tmuxBindings(program string, kb settings.Keybindings) ([]string, error) {
	pairs := []struct{ key, sub string }{
		{kb.SwitchProject, "switch"},
		{kb.ManageProjects, "manage"},
		{kb.OpenOverview, "overview"},
	}
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		key, err := tmuxKey(p.key)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fmt.Sprintf(`bind-key -n %s display-popup -E -w 80%% -h 80%% -d "#{pane_current_path}" "%s %s"`, key, program, p.sub))
	}
	return lines, nil
}

// tmuxKey converts a binding such as ctrl+shift+u to tmux notation (C-S-u)
func tmuxKey(binding string) (string, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(binding)), "+")
	key := parts[len(parts)-1]
	if key == "" {
		return "", fmt.Errorf("hotkey %q has no key", binding)
	}

	var b strings.Builder
	for _, mod := range parts[:len(parts)-1] {
		switch mod {
		case "ctrl", "control":
			b.WriteString("C-")
		case "alt", "meta", "option":
			b.WriteString("M-")
		case "shift":
			b.WriteString("S-")
		default:
			return "", fmt.Errorf("hotkey %q: modifier %q is not supported by tmux", binding, mod)
		}
	}

	switch {
	case len(key) == 1:
		b.WriteString(key)
	case key[0] == 'f' && len(key) <= 3:
		b.WriteString(strings.ToUpper(key))
	default:
		b.WriteString(strings.ToUpper(key[:1]) + key[1:])
	}
	return b.String(), nil
}
