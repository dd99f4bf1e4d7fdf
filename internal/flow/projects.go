package flow

import (
	"context"

	"projectswitch/internal/prompt"
	"projectswitch/internal/state"
)

// AddProject asks for name, description, folder, group and the persist
// flag, then saves the project. An empty name aborts.
func (f *Flows) AddProject(ctx context.Context) error {
	name, err := f.required(ctx, prompt.Field{Prompt: "Enter project name"})
	if err != nil {
		return err
	}
	description, err := f.prompts.Input(ctx, prompt.Field{Prompt: "Enter project description"})
	if err != nil {
		return err
	}
	path, err := f.prompts.BrowseFolder(ctx, "Select Project Folder")
	if err != nil {
		return err
	}

	groups, err := f.manager.Groups()
	if err != nil {
		return err
	}
	// with no groups the default group is created together with the
	// project, so a later cancel leaves nothing behind
	var groupID string
	if len(groups) > 0 {
		a, err := f.manager.SelectGroupForAssignment(ctx, f.prompts)
		if err != nil {
			return err
		}
		groupID = a.GroupID
	}

	persist, err := prompt.YesNo(ctx, f.prompts, PersistQuestion)
	if err != nil {
		return err
	}

	if _, err := f.manager.AddProject(state.NewProject{
		Name:            name,
		Path:            path,
		Description:     description,
		GroupID:         groupID,
		PersistTerminal: persist,
	}); err != nil {
		return err
	}

	if len(groups) == 0 {
		f.notify.Info("Created a default group as no groups existed.")
	}
	f.notify.Info("Project '%s' added successfully!", name)
	return nil
}

// EditProject edits the named project, or one picked from the list when
// name is empty. Picking from the list also asks for the persist flag.
func (f *Flows) EditProject(ctx context.Context, name string) error {
	askPersist := false
	if name == "" {
		var err error
		if name, err = f.pickProject(ctx, "Select a project to edit"); err != nil {
			return err
		}
		askPersist = true
	}

	p, err := f.manager.FindProject(name)
	if err != nil {
		return err
	}

	newName, err := f.prompts.Input(ctx, prompt.Field{Prompt: "Enter new project name", Value: p.Name})
	if err != nil {
		return err
	}
	newDescription, err := f.prompts.Input(ctx, prompt.Field{Prompt: "Enter new project description", Value: p.Description})
	if err != nil {
		return err
	}

	upd := state.ProjectUpdate{Name: &newName, Description: &newDescription}

	groups, err := f.manager.Groups()
	if err != nil {
		return err
	}
	if len(groups) > 0 {
		a, err := f.manager.SelectGroupForAssignment(ctx, f.prompts)
		if err != nil {
			return err
		}
		upd.GroupID = &a.GroupID
	}

	if askPersist {
		persist, err := prompt.YesNo(ctx, f.prompts, PersistQuestion)
		if err != nil {
			return err
		}
		upd.PersistTerminal = &persist
	}

	if _, err := f.manager.EditProject(name, upd); err != nil {
		return err
	}
	f.notify.Info("Project '%s' updated successfully!", name)
	return nil
}

// DeleteProject removes the named project, or one picked from the list
// when name is empty, after confirmation
func (f *Flows) DeleteProject(ctx context.Context, name string) error {
	if name == "" {
		var err error
		if name, err = f.pickProject(ctx, "Select a project to remove from the Switch"); err != nil {
			return err
		}
	}

	n, err := f.manager.DeleteProject(ctx, name, f.prompts)
	if err != nil {
		return err
	}
	if n > 0 {
		f.notify.Info("Project '%s' deleted from the Switch!", name)
	}
	return nil
}

// SetPersistTerminal updates the persist flag of the named project
func (f *Flows) SetPersistTerminal(name string, persist bool) error {
	if err := f.manager.SetPersistTerminal(name, persist); err != nil {
		return err
	}
	status := "disabled"
	if persist {
		status = "enabled"
	}
	f.notify.Info("Terminal persistence %s for project '%s'.", status, name)
	return nil
}

func (f *Flows) pickProject(ctx context.Context, title string) (string, error) {
	projects, err := f.manager.Projects()
	if err != nil {
		return "", err
	}
	names := make([]string, len(projects))
	for i, p := range projects {
		names[i] = p.Name
	}
	return f.pickName(ctx, title, names)
}
