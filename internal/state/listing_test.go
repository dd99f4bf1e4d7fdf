package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(projects []Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Name
	}
	return out
}

func TestListByGroupPreservesOrder(t *testing.T) {
	data := &ProjectData{
		Groups: []Group{{ID: "2", Name: "Second"}, {ID: "1", Name: "First"}, {ID: "3", Name: "Empty"}},
		Projects: []Project{
			{Name: "a", GroupID: "1"},
			{Name: "b", GroupID: "2"},
			{Name: "c", GroupID: "1"},
			{Name: "d", GroupID: "2"},
			{Name: "e", GroupID: "1"},
		},
	}

	g := ListByGroup(data)
	require.Equal(t, 3, g.Len())

	var order []string
	for _, e := range g.Entries {
		order = append(order, e.Group.ID)
	}
	assert.Equal(t, []string{"2", "1", "3"}, order)

	first, ok := g.Get("1")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c", "e"}, names(first))

	second, ok := g.Get("2")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "d"}, names(second))

	empty, ok := g.Get("3")
	require.True(t, ok)
	assert.Empty(t, empty)
}

func TestListByGroupOmitsSentinelProjects(t *testing.T) {
	data := &ProjectData{
		Groups: []Group{{ID: "1", Name: "Work"}},
		Projects: []Project{
			{Name: "kept", GroupID: "1"},
			{Name: "parked", GroupID: DefaultGroupID},
			{Name: "orphan", GroupID: "99"},
		},
	}

	g := ListByGroup(data)
	_, ok := g.Get(DefaultGroupID)
	assert.False(t, ok, "the sentinel never gets an entry")

	total := 0
	for _, e := range g.Entries {
		total += len(e.Projects)
	}
	assert.Equal(t, 1, total)

	assert.Equal(t, []string{"parked", "orphan"}, names(Ungrouped(data)))
}

func TestListByGroupEmpty(t *testing.T) {
	g := ListByGroup(NewProjectData())
	assert.Zero(t, g.Len())
	assert.Empty(t, Ungrouped(NewProjectData()))
}
