package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	"projectswitch/internal/prompt"

	tea "github.com/charmbracelet/bubbletea"
)

// Prompter runs each prompt as its own bubbletea program
type Prompter struct {
	in  io.Reader
	out io.Writer
	// StartDir is where the folder browser opens
	StartDir string
}

// NewPrompter creates a prompter on stdin and stderr, leaving stdout for
// command output
func NewPrompter() *Prompter {
	return &Prompter{in: os.Stdin, out: os.Stderr}
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	prog := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)
	final, err := prog.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// Pick shows a filterable list
func (p *Prompter) Pick(ctx context.Context, title string, items []prompt.Item) (prompt.Item, error) {
	final, err := p.run(ctx, newPickerModel(title, items))
	if err != nil {
		return prompt.Item{}, err
	}
	m := final.(pickerModel)
	if m.selected == nil {
		return prompt.Item{}, prompt.ErrCancelled
	}
	return *m.selected, nil
}

// Input asks for a line of text
func (p *Prompter) Input(ctx context.Context, field prompt.Field) (string, error) {
	final, err := p.run(ctx, newInputModel(field))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if !m.submitted {
		return "", prompt.ErrCancelled
	}
	return m.input.Value(), nil
}

// BrowseFolder lets the user walk the filesystem and choose a folder
func (p *Prompter) BrowseFolder(ctx context.Context, title string) (string, error) {
	final, err := p.run(ctx, newFolderModel(title, p.StartDir))
	if err != nil {
		return "", err
	}
	m := final.(folderModel)
	if m.path == "" {
		return "", prompt.ErrCancelled
	}
	return m.path, nil
}

// Confirm offers Yes and No
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	return prompt.YesNo(ctx, p, question)
}

var _ prompt.Prompter = (*Prompter)(nil)
