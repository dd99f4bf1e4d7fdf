// Package prompt defines the interactive collaborators the project flows
// depend on: a picker, a text form, a folder browser and a yes/no confirmer.
//
// Every collaborator reports a user abort as ErrCancelled. An empty but
// submitted text input is not a cancellation; callers decide what an empty
// answer means.
package prompt

import (
	"context"
	"errors"
)

// ErrCancelled is returned when the user dismisses a prompt.
var ErrCancelled = errors.New("cancelled")

// Item is one row offered by a Picker.
type Item struct {
	Label       string
	Description string
	Detail      string
	// Value identifies the item to the caller; it is never shown.
	Value string
	// Separator rows are headings and cannot be selected.
	Separator bool
}

// Field describes a single text input.
type Field struct {
	Prompt      string
	Placeholder string
	// Value pre-fills the input.
	Value string
}

// Picker presents a list and returns the chosen item.
type Picker interface {
	Pick(ctx context.Context, title string, items []Item) (Item, error)
}

// Form asks for one line of text.
type Form interface {
	Input(ctx context.Context, field Field) (string, error)
}

// FolderBrowser returns the path of an existing folder.
type FolderBrowser interface {
	BrowseFolder(ctx context.Context, title string) (string, error)
}

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, question string) (bool, error)
}

// Prompter bundles every collaborator.
type Prompter interface {
	Picker
	Form
	FolderBrowser
	Confirmer
}

// Choices turns plain labels into picker items whose value is the label.
func Choices(labels ...string) []Item {
	items := make([]Item, len(labels))
	for i, l := range labels {
		items[i] = Item{Label: l, Value: l}
	}
	return items
}

// YesNo asks question through a picker offering Yes and No.
func YesNo(ctx context.Context, p Picker, question string) (bool, error) {
	item, err := p.Pick(ctx, question, Choices("Yes", "No"))
	if err != nil {
		return false, err
	}
	return item.Value == "Yes", nil
}
