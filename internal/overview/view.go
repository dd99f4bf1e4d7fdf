package overview

import (
	"projectswitch/internal/settings"
	"projectswitch/internal/state"
)

// Decorator returns extra text shown next to a project path, such as the
// git branch. An empty string shows nothing.
type Decorator func(path string) string

// View is everything the overview shows
type View struct {
	Groups      []GroupView          `json:"groups"`
	Ungrouped   []ProjectView        `json:"ungrouped"`
	Keybindings settings.Keybindings `json:"hotkeys"`
}

// GroupView is one group and its projects in stored order
type GroupView struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Projects []ProjectView `json:"projects"`
}

// ProjectView is one project row
type ProjectView struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Path            string `json:"path"`
	PersistTerminal bool   `json:"persistTerminal"`
	Decoration      string `json:"decoration,omitempty"`
}

// Build derives the view from stored data
func Build(data *state.ProjectData, kb settings.Keybindings, decorate Decorator) View {
	project := func(p state.Project) ProjectView {
		pv := ProjectView{
			Name:            p.Name,
			Description:     p.Description,
			Path:            p.Path,
			PersistTerminal: p.PersistTerminal,
		}
		if decorate != nil {
			pv.Decoration = decorate(p.Path)
		}
		return pv
	}

	v := View{
		Groups:      []GroupView{},
		Ungrouped:   []ProjectView{},
		Keybindings: kb,
	}
	for _, entry := range state.ListByGroup(data).Entries {
		gv := GroupView{ID: entry.Group.ID, Name: entry.Group.Name, Projects: []ProjectView{}}
		for _, p := range entry.Projects {
			gv.Projects = append(gv.Projects, project(p))
		}
		v.Groups = append(v.Groups, gv)
	}
	for _, p := range state.Ungrouped(data) {
		v.Ungrouped = append(v.Ungrouped, project(p))
	}
	return v
}

// ProjectCount returns the number of projects shown
func (v View) ProjectCount() int {
	n := len(v.Ungrouped)
	for _, g := range v.Groups {
		n += len(g.Projects)
	}
	return n
}
