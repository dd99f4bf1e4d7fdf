package prompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedReplaysInOrder(t *testing.T) {
	ctx := context.Background()
	s := NewScripted(Text("alpha"), Text(""), Text("/tmp/a"), Yes(), Text("No"))

	name, err := s.Input(ctx, Field{Prompt: "name"})
	require.NoError(t, err)
	assert.Equal(t, "alpha", name)

	desc, err := s.Input(ctx, Field{Prompt: "description"})
	require.NoError(t, err)
	assert.Empty(t, desc, "empty input is an answer, not a cancel")

	dir, err := s.BrowseFolder(ctx, "folder")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a", dir)

	ok, err := s.Confirm(ctx, "sure?")
	require.NoError(t, err)
	assert.True(t, ok)

	yes, err := YesNo(ctx, s, "persist?")
	require.NoError(t, err)
	assert.False(t, yes)

	assert.Equal(t, []string{"name", "description", "folder", "sure?", "persist?"}, s.Asked)
	assert.Zero(t, s.Remaining())
}

func TestScriptedCancel(t *testing.T) {
	s := NewScripted(Cancel())
	_, err := s.Input(context.Background(), Field{Prompt: "name"})
	assert.ErrorIs(t, err, ErrCancelled)

	_, err = s.Input(context.Background(), Field{Prompt: "exhausted"})
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestScriptedPickSkipsSeparators(t *testing.T) {
	items := []Item{
		{Label: "Work", Separator: true},
		{Label: "Work", Value: "p1"},
	}
	s := NewScripted(Text("Work"))
	got, err := s.Pick(context.Background(), "pick", items)
	require.NoError(t, err)
	assert.Equal(t, "p1", got.Value)
}

func TestScriptedPickUnknownValue(t *testing.T) {
	s := NewScripted(Text("missing"))
	_, err := s.Pick(context.Background(), "pick", Choices("a", "b"))
	assert.ErrorIs(t, err, ErrCancelled)
}
