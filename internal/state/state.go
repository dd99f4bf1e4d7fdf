package state

// DefaultGroupID marks a project whose group was deleted. It never
// corresponds to a Group entry; consumers treat it as "ungrouped".
const DefaultGroupID = "default"

// DefaultGroupName is the name of the group synthesized when a project is
// added and no group exists yet.
const DefaultGroupName = "Default Group"

// Project is a named reference to a local folder
type Project struct {
	Name            string `json:"name"`
	Path            string `json:"path"`
	Description     string `json:"description"`
	GroupID         string `json:"groupId"`
	PersistTerminal bool   `json:"persistTerminal"`
}

// Ungrouped reports whether the project points at the sentinel group
func (p Project) Ungrouped() bool {
	return p.GroupID == DefaultGroupID
}

// Group is a display bucket for projects
type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectData is the persisted document
type ProjectData struct {
	Projects []Project `json:"projects"`
	Groups   []Group   `json:"groups"`
}

// NewProjectData creates an empty document
func NewProjectData() *ProjectData {
	return &ProjectData{
		Projects: []Project{},
		Groups:   []Group{},
	}
}

// normalize makes sure both collections serialize as arrays
func (d *ProjectData) normalize() {
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Groups == nil {
		d.Groups = []Group{}
	}
}

// GroupIndex returns the index of the group with id, or -1
func (d *ProjectData) GroupIndex(id string) int {
	for i := range d.Groups {
		if d.Groups[i].ID == id {
			return i
		}
	}
	return -1
}

// HasGroup reports whether a real group with id exists
func (d *ProjectData) HasGroup(id string) bool {
	return d.GroupIndex(id) >= 0
}

// GroupName returns the display name for a group id, including the sentinel
func (d *ProjectData) GroupName(id string) string {
	if i := d.GroupIndex(id); i >= 0 {
		return d.Groups[i].Name
	}
	return "Ungrouped"
}

// ProjectIndex returns the index of the first project named name, or -1
func (d *ProjectData) ProjectIndex(name string) int {
	for i := range d.Projects {
		if d.Projects[i].Name == name {
			return i
		}
	}
	return -1
}

// Orphans returns projects whose group id is neither a real group nor the sentinel
func (d *ProjectData) Orphans() []Project {
	var out []Project
	for _, p := range d.Projects {
		if p.GroupID != DefaultGroupID && !d.HasGroup(p.GroupID) {
			out = append(out, p)
		}
	}
	return out
}

// Clone returns a deep copy
func (d *ProjectData) Clone() *ProjectData {
	c := &ProjectData{
		Projects: make([]Project, len(d.Projects)),
		Groups:   make([]Group, len(d.Groups)),
	}
	copy(c.Projects, d.Projects)
	copy(c.Groups, d.Groups)
	return c
}
