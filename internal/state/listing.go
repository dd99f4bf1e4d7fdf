package state

// GroupListing is one group with its projects
type GroupListing struct {
	Group    Group
	Projects []Project
}

// Grouping maps group ids to their projects while keeping group order
type Grouping struct {
	Entries []GroupListing
	index   map[string]int
}

// Get returns the projects of group id and whether the group is present
func (g Grouping) Get(id string) ([]Project, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.Entries[i].Projects, true
}

// Len returns the number of groups
func (g Grouping) Len() int {
	return len(g.Entries)
}

// ListByGroup projects data into one entry per group, in group order, each
// holding the matching projects in document order. Only ids present in
// data.Groups appear: projects on the sentinel or an unknown id are left out
// and must be fetched with Ungrouped.
func ListByGroup(data *ProjectData) Grouping {
	g := Grouping{
		Entries: make([]GroupListing, 0, len(data.Groups)),
		index:   make(map[string]int, len(data.Groups)),
	}
	for _, grp := range data.Groups {
		if _, dup := g.index[grp.ID]; dup {
			continue
		}
		projects := []Project{}
		for _, p := range data.Projects {
			if p.GroupID == grp.ID {
				projects = append(projects, p)
			}
		}
		g.index[grp.ID] = len(g.Entries)
		g.Entries = append(g.Entries, GroupListing{Group: grp, Projects: projects})
	}
	return g
}

// Ungrouped returns the projects ListByGroup leaves out, in document order
func Ungrouped(data *ProjectData) []Project {
	out := []Project{}
	for _, p := range data.Projects {
		if !data.HasGroup(p.GroupID) {
			out = append(out, p)
		}
	}
	return out
}
