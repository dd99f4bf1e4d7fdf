package flow

import (
	"context"
	"fmt"

	"projectswitch/internal/prompt"
)

// AddGroup asks for a name and creates the group
func (f *Flows) AddGroup(ctx context.Context) error {
	name, err := f.required(ctx, prompt.Field{Prompt: "Enter group name"})
	if err != nil {
		return err
	}
	if _, err := f.manager.AddGroup(name); err != nil {
		return err
	}
	f.notify.Info("Group '%s' added successfully!", name)
	return nil
}

// EditGroup renames the named group, or one picked from the list when
// groupName is empty. An empty new name keeps the old one.
func (f *Flows) EditGroup(ctx context.Context, groupName string) error {
	if groupName == "" {
		var err error
		if groupName, err = f.pickGroup(ctx, "Select a group to edit"); err != nil {
			return err
		}
	}

	g, err := f.manager.FindGroupByName(groupName)
	if err != nil {
		return err
	}
	newName, err := f.prompts.Input(ctx, prompt.Field{Prompt: "Enter new group name", Value: g.Name})
	if err != nil {
		return err
	}
	if err := f.manager.RenameGroup(g.ID, newName); err != nil {
		return err
	}
	f.notify.Info("Group '%s' updated successfully!", groupName)
	return nil
}

// DeleteGroup removes the named group, or one picked from the list when
// groupName is empty, after confirmation. Its projects become ungrouped.
func (f *Flows) DeleteGroup(ctx context.Context, groupName string) error {
	if groupName == "" {
		var err error
		if groupName, err = f.pickGroup(ctx, "Select a group to remove"); err != nil {
			return err
		}
	}

	g, err := f.manager.FindGroupByName(groupName)
	if err != nil {
		return err
	}

	ok, err := f.prompts.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete '%s'? Projects in this group will not be deleted.", groupName))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if err := f.manager.DeleteGroup(g.ID); err != nil {
		return err
	}
	f.notify.Info("Group '%s' deleted successfully!", groupName)
	return nil
}

func (f *Flows) pickGroup(ctx context.Context, title string) (string, error) {
	groups, err := f.manager.Groups()
	if err != nil {
		return "", err
	}
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name
	}
	return f.pickName(ctx, title, names)
}
