package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	folderHere   = key.NewBinding(key.WithKeys("."), key.WithHelp(".", "choose this folder"))
	folderCancel = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "cancel"))
)

// folderModel browses directories. Enter on a folder chooses it, "."
// chooses the folder being shown.
type folderModel struct {
	title     string
	picker    filepicker.Model
	path      string
	cancelled bool
}

func newFolderModel(title, start string) folderModel {
	fp := filepicker.New()
	fp.DirAllowed = true
	fp.FileAllowed = false
	fp.ShowHidden = false
	fp.AutoHeight = false
	fp.Height = defaultHeight - 6
	if start == "" {
		start, _ = os.Getwd()
	}
	fp.CurrentDirectory = start
	return folderModel{title: title, picker: fp}
}

func (m folderModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m folderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, folderCancel):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, folderHere):
			m.path = m.picker.CurrentDirectory
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.path = path
		return m, tea.Quit
	}
	return m, cmd
}

func (m folderModel) View() string {
	if m.path != "" || m.cancelled {
		return ""
	}
	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.title),
		dimStyle.Render(m.picker.CurrentDirectory),
		m.picker.View(),
		helpStyle.Render("enter choose • . choose current • ← back • q cancel"),
	))
}
