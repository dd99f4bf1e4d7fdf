package tui

import (
	"projectswitch/internal/prompt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// inputModel asks for one line of text. Enter submits, even when empty.
type inputModel struct {
	prompt    string
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newInputModel(field prompt.Field) inputModel {
	ti := textinput.New()
	ti.Placeholder = field.Placeholder
	ti.SetValue(field.Value)
	ti.CharLimit = 256
	ti.Width = defaultWidth - 8
	ti.Focus()
	return inputModel{prompt: field.Prompt, input: ti}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.prompt),
		m.input.View(),
		helpStyle.Render("enter submit • esc cancel"),
	))
}
