package state

import (
	"context"
	"fmt"
	"strings"

	"projectswitch/internal/logging"
	"projectswitch/internal/prompt"
)

// AddGroup appends a new group and persists it
func (m *Manager) AddGroup(name string) (Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Group{}, fmt.Errorf("group name: %w", ErrEmptyInput)
	}

	var group Group
	err := m.mutate(func(data *ProjectData) error {
		group = m.addGroup(data, name)
		return nil
	})
	if err != nil {
		return Group{}, err
	}

	logging.Info("Group added", "id", group.ID, "name", group.Name)
	return group, nil
}

func (m *Manager) addGroup(data *ProjectData, name string) Group {
	group := Group{ID: m.newGroupID(data), Name: name}
	data.Groups = append(data.Groups, group)
	return group
}

// RenameGroup changes a group's name. An empty name keeps the old one.
func (m *Manager) RenameGroup(id, newName string) error {
	err := m.mutate(func(data *ProjectData) error {
		i := data.GroupIndex(id)
		if i < 0 {
			return fmt.Errorf("group %q: %w", id, ErrNotFound)
		}
		if n := strings.TrimSpace(newName); n != "" {
			data.Groups[i].Name = n
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Info("Group renamed", "id", id, "name", newName)
	return nil
}

// DeleteGroup removes a group and moves its projects to the sentinel group.
// Both changes are written in one save; no project is deleted.
func (m *Manager) DeleteGroup(id string) error {
	moved := 0
	err := m.mutate(func(data *ProjectData) error {
		i := data.GroupIndex(id)
		if i < 0 {
			return fmt.Errorf("group %q: %w", id, ErrNotFound)
		}
		data.Groups = append(data.Groups[:i], data.Groups[i+1:]...)
		for j := range data.Projects {
			if data.Projects[j].GroupID == id {
				data.Projects[j].GroupID = DefaultGroupID
				moved++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logging.Info("Group deleted", "id", id, "projectsMoved", moved)
	return nil
}

// FindGroupByName returns the first group named name
func (m *Manager) FindGroupByName(name string) (Group, error) {
	data, err := m.store.Load()
	if err != nil {
		return Group{}, err
	}
	for _, g := range data.Groups {
		if g.Name == name {
			return g, nil
		}
	}
	return Group{}, fmt.Errorf("group %q: %w", name, ErrNotFound)
}

// Groups returns all groups in insertion order
func (m *Manager) Groups() ([]Group, error) {
	data, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	return data.Groups, nil
}

// Assignment is the outcome of SelectGroupForAssignment
type Assignment struct {
	GroupID string
	// Created is set when the default group had to be synthesized
	Created bool
}

// SelectGroupForAssignment picks the group a project should join. With no
// groups it creates "Default Group"; with one group it returns it without
// asking; otherwise the picker decides and a cancel yields ErrCancelled.
func (m *Manager) SelectGroupForAssignment(ctx context.Context, picker prompt.Picker) (Assignment, error) {
	groups, err := m.Groups()
	if err != nil {
		return Assignment{}, err
	}

	switch len(groups) {
	case 0:
		g, err := m.AddGroup(DefaultGroupName)
		if err != nil {
			return Assignment{}, err
		}
		return Assignment{GroupID: g.ID, Created: true}, nil
	case 1:
		return Assignment{GroupID: groups[0].ID}, nil
	}

	items := make([]prompt.Item, len(groups))
	for i, g := range groups {
		items[i] = prompt.Item{Label: g.Name, Value: g.ID}
	}
	item, err := picker.Pick(ctx, "Select a group for the project", items)
	if err != nil {
		return Assignment{}, err
	}
	if item.Value == "" {
		return Assignment{}, ErrCancelled
	}
	return Assignment{GroupID: item.Value}, nil
}
