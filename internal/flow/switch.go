package flow

import (
	"context"
	"fmt"
	"strconv"

	"projectswitch/internal/logging"
	"projectswitch/internal/prompt"
	"projectswitch/internal/state"
)

// UngroupedHeading labels projects that belong to no group
const UngroupedHeading = "Ungrouped"

// SwitchItems builds the switch picker: a separator per group followed by
// its projects, then any ungrouped projects. Item values index
// data.Projects.
func SwitchItems(data *state.ProjectData) []prompt.Item {
	item := func(i int) prompt.Item {
		p := data.Projects[i]
		return prompt.Item{
			Label:       p.Name,
			Description: p.Description,
			Detail:      p.Path,
			Value:       strconv.Itoa(i),
		}
	}

	var items []prompt.Item
	grouped := make(map[int]bool)
	for _, g := range data.Groups {
		items = append(items, prompt.Item{Label: g.Name, Separator: true})
		for i := range data.Projects {
			if data.Projects[i].GroupID == g.ID {
				items = append(items, item(i))
				grouped[i] = true
			}
		}
	}

	var ungrouped []prompt.Item
	for i := range data.Projects {
		if !grouped[i] {
			ungrouped = append(ungrouped, item(i))
		}
	}
	if len(ungrouped) > 0 {
		items = append(items, prompt.Item{Label: UngroupedHeading, Separator: true})
		items = append(items, ungrouped...)
	}
	return items
}

// Switch asks for a project and opens it
func (f *Flows) Switch(ctx context.Context) error {
	data, err := f.manager.Data()
	if err != nil {
		return err
	}
	if len(data.Projects) == 0 {
		f.notify.Warn("No projects yet. Add one with 'projectswitch project add'.")
		return nil
	}

	item, err := f.prompts.Pick(ctx, "Select a project to open", SwitchItems(data))
	if err != nil {
		return err
	}
	i, err := strconv.Atoi(item.Value)
	if err != nil || i < 0 || i >= len(data.Projects) {
		return state.ErrCancelled
	}
	return f.Open(ctx, data.Projects[i])
}

// SwitchTo opens the first project named name
func (f *Flows) SwitchTo(ctx context.Context, name string) error {
	p, err := f.manager.FindProject(name)
	if err != nil {
		return err
	}
	return f.Open(ctx, p)
}

// Open opens the project folder. With PersistTerminal set the open
// terminals are captured first and recreated in the project folder after.
func (f *Flows) Open(ctx context.Context, p state.Project) error {
	persist := p.PersistTerminal && f.snapshotter != nil
	captured := false
	if persist {
		if _, err := f.snapshotter.Capture(ctx); err != nil {
			logging.Warn("Terminal capture failed", "project", p.Name, "error", err)
			f.notify.Warn("Could not capture terminals: %v", err)
		} else {
			captured = true
		}
	}

	if err := f.workspace.OpenFolder(ctx, p.Path); err != nil {
		return err
	}
	logging.Info("Switched project", "name", p.Name, "path", logging.MaskPath(p.Path), "persistTerminal", p.PersistTerminal)

	if !captured {
		return nil
	}
	defer f.snapshotter.Finish()
	if _, err := f.snapshotter.Restore(ctx, p.Path); err != nil {
		return fmt.Errorf("failed to restore terminals: %w", err)
	}
	return nil
}
