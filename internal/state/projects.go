package state

import (
	"context"
	"fmt"
	"strings"

	"projectswitch/internal/logging"
	"projectswitch/internal/prompt"
)

// NewProject holds the fields for AddProject
type NewProject struct {
	Name        string
	Path        string
	Description string
	// GroupID must name an existing group. Empty means "no choice made":
	// accepted only while no groups exist, in which case the default group
	// is created.
	GroupID         string
	PersistTerminal bool
}

// ProjectUpdate lists the fields EditProject should touch. A nil field keeps
// the old value; so does an empty Name or Description.
type ProjectUpdate struct {
	Name            *string
	Description     *string
	GroupID         *string
	PersistTerminal *bool
}

// AddProject appends a project and persists it. Names are not required to
// be unique.
func (m *Manager) AddProject(np NewProject) (Project, error) {
	if strings.TrimSpace(np.Name) == "" {
		return Project{}, fmt.Errorf("project name: %w", ErrEmptyInput)
	}

	var project Project
	err := m.mutate(func(data *ProjectData) error {
		groupID := np.GroupID
		switch {
		case groupID == "" && len(data.Groups) == 0:
			groupID = m.addGroup(data, DefaultGroupName).ID
		case groupID == "":
			return fmt.Errorf("group: %w", ErrEmptyInput)
		case !data.HasGroup(groupID):
			return fmt.Errorf("group %q: %w", groupID, ErrNotFound)
		}

		project = Project{
			Name:            np.Name,
			Path:            np.Path,
			Description:     np.Description,
			GroupID:         groupID,
			PersistTerminal: np.PersistTerminal,
		}
		data.Projects = append(data.Projects, project)
		return nil
	})
	if err != nil {
		return Project{}, err
	}

	logging.Info("Project added",
		"name", project.Name,
		"path", logging.MaskPath(project.Path),
		"groupId", project.GroupID)
	return project, nil
}

// EditProject updates the first project named name
func (m *Manager) EditProject(name string, upd ProjectUpdate) (Project, error) {
	var project Project
	err := m.mutate(func(data *ProjectData) error {
		i := data.ProjectIndex(name)
		if i < 0 {
			return fmt.Errorf("project %q: %w", name, ErrNotFound)
		}
		p := &data.Projects[i]

		if upd.GroupID != nil {
			if !data.HasGroup(*upd.GroupID) {
				return fmt.Errorf("group %q: %w", *upd.GroupID, ErrNotFound)
			}
			p.GroupID = *upd.GroupID
		}
		if upd.Name != nil && *upd.Name != "" {
			p.Name = *upd.Name
		}
		if upd.Description != nil && *upd.Description != "" {
			p.Description = *upd.Description
		}
		if upd.PersistTerminal != nil {
			p.PersistTerminal = *upd.PersistTerminal
		}
		project = *p
		return nil
	})
	if err != nil {
		return Project{}, err
	}

	logging.Info("Project updated", "name", name, "newName", project.Name, "groupId", project.GroupID)
	return project, nil
}

// SetPersistTerminal toggles terminal persistence for the first project named name
func (m *Manager) SetPersistTerminal(name string, persist bool) error {
	_, err := m.EditProject(name, ProjectUpdate{PersistTerminal: &persist})
	return err
}

// DeleteProject removes every project named name once the confirmer agrees.
// A declined confirmation is a no-op and returns 0 with no error.
func (m *Manager) DeleteProject(ctx context.Context, name string, confirmer prompt.Confirmer) (int, error) {
	ok, err := confirmer.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete '%s'?", name))
	if err != nil {
		return 0, err
	}
	if !ok {
		logging.Debug("Project deletion declined", "name", name)
		return 0, nil
	}

	removed := 0
	err = m.mutate(func(data *ProjectData) error {
		kept := data.Projects[:0]
		for _, p := range data.Projects {
			if p.Name == name {
				removed++
				continue
			}
			kept = append(kept, p)
		}
		if removed == 0 {
			return fmt.Errorf("project %q: %w", name, ErrNotFound)
		}
		data.Projects = kept
		return nil
	})
	if err != nil {
		return 0, err
	}

	logging.Info("Project deleted", "name", name, "removed", removed)
	return removed, nil
}

// FindProject returns the first project named name
func (m *Manager) FindProject(name string) (Project, error) {
	data, err := m.store.Load()
	if err != nil {
		return Project{}, err
	}
	if i := data.ProjectIndex(name); i >= 0 {
		return data.Projects[i], nil
	}
	return Project{}, fmt.Errorf("project %q: %w", name, ErrNotFound)
}

// Projects returns all projects in insertion order
func (m *Manager) Projects() ([]Project, error) {
	data, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	return data.Projects, nil
}
