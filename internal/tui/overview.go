package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"projectswitch/internal/logging"
	"projectswitch/internal/overview"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// refreshMsg carries a view rebuilt after the document changed on disk
type refreshMsg struct {
	view overview.View
}

// row is one selectable line of the overview
type row struct {
	group   string // group name, empty for ungrouped projects
	project string // empty on a group heading
	persist bool
}

type overviewKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	AddProject    key.Binding
	AddGroup      key.Binding
	Edit          key.Binding
	Delete        key.Binding
	TogglePersist key.Binding
	Hotkey        key.Binding
	Quit          key.Binding
}

var overviewKeys = overviewKeyMap{
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	AddProject:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add project")),
	AddGroup:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add group")),
	Edit:          key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	TogglePersist: key.NewBinding(key.WithKeys("p", " "), key.WithHelp("p", "toggle persist")),
	Hotkey:        key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "save hotkeys")),
	Quit:          key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// overviewModel shows the rendered overview with a cursor and turns keys
// into overview messages. It quits with the message pending so prompts
// can run outside the alternate screen.
type overviewModel struct {
	view    overview.View
	rows    []row
	cursor  int
	width   int
	height  int
	status  string
	pending *overview.Message
}

func newOverviewModel(v overview.View, cursor int, status string) overviewModel {
	m := overviewModel{width: defaultWidth, height: defaultHeight, status: status}
	m.setView(v)
	m.cursor = clamp(cursor, len(m.rows))
	return m
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *overviewModel) setView(v overview.View) {
	m.view = v
	m.rows = m.rows[:0]
	for _, g := range v.Groups {
		m.rows = append(m.rows, row{group: g.Name})
		for _, p := range g.Projects {
			m.rows = append(m.rows, row{group: g.Name, project: p.Name, persist: p.PersistTerminal})
		}
	}
	for _, p := range v.Ungrouped {
		m.rows = append(m.rows, row{project: p.Name, persist: p.PersistTerminal})
	}
	m.cursor = clamp(m.cursor, len(m.rows))
}

func (m overviewModel) current() (row, bool) {
	if len(m.rows) == 0 {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m overviewModel) Init() tea.Cmd {
	return nil
}

func (m overviewModel) send(msg overview.Message) (tea.Model, tea.Cmd) {
	m.pending = &msg
	return m, tea.Quit
}

func (m overviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case refreshMsg:
		m.setView(msg.view)
		m.status = "reloaded"
		return m, nil

	case tea.KeyMsg:
		r, ok := m.current()
		switch {
		case key.Matches(msg, overviewKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, overviewKeys.Up):
			m.cursor = clamp(m.cursor-1, len(m.rows))
		case key.Matches(msg, overviewKeys.Down):
			m.cursor = clamp(m.cursor+1, len(m.rows))
		case key.Matches(msg, overviewKeys.AddProject):
			return m.send(overview.Message{Command: overview.CmdAddProject})
		case key.Matches(msg, overviewKeys.AddGroup):
			return m.send(overview.Message{Command: overview.CmdAddGroup})
		case key.Matches(msg, overviewKeys.Hotkey):
			kb := m.view.Keybindings
			return m.send(overview.Message{
				Command:               overview.CmdSaveHotkeys,
				SwitchProjectHotkey:   kb.SwitchProject,
				ManageProjectsHotkey:  kb.ManageProjects,
				OpenWebOverviewHotkey: kb.OpenOverview,
			})
		case !ok:
		case key.Matches(msg, overviewKeys.Edit):
			if r.project != "" {
				return m.send(overview.Message{Command: overview.CmdEditProject, ProjectName: r.project})
			}
			if r.group != "" {
				return m.send(overview.Message{Command: overview.CmdEditGroup, GroupName: r.group})
			}
		case key.Matches(msg, overviewKeys.Delete):
			if r.project != "" {
				return m.send(overview.Message{Command: overview.CmdDeleteProject, ProjectName: r.project})
			}
			if r.group != "" {
				return m.send(overview.Message{Command: overview.CmdDeleteGroup, GroupName: r.group})
			}
		case key.Matches(msg, overviewKeys.TogglePersist):
			if r.project != "" {
				persist := !r.persist
				return m.send(overview.Message{Command: overview.CmdUpdatePersistTerminal, ProjectName: r.project, PersistTerminal: &persist})
			}
		}
	}
	return m, nil
}

func (m overviewModel) View() string {
	if m.pending != nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(overview.Render(m.view, m.width-4))
	b.WriteString("\n\n")

	if r, ok := m.current(); ok {
		target := "group " + r.group
		if r.project != "" {
			target = "project " + r.project
		}
		b.WriteString(selectedStyle.Render("> " + target))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ move • a add project • A add group • e edit • d delete • p persist • h save hotkeys • q quit"))

	return lipgloss.NewStyle().Padding(0, 2).Render(b.String())
}

// Overview runs the live overview until the user quits
type Overview struct {
	dispatcher *overview.Dispatcher
	watch      func(ctx context.Context, onChange func()) error
	in         io.Reader
	out        io.Writer
}

// NewOverview creates the live overview. watch, when set, reports changes
// to the project document.
func NewOverview(d *overview.Dispatcher, watch func(ctx context.Context, onChange func()) error) *Overview {
	return &Overview{dispatcher: d, watch: watch, in: os.Stdin, out: os.Stderr}
}

// Run shows the overview. Each action leaves the screen, runs its prompts,
// and comes back with a rebuilt view.
func (o *Overview) Run(ctx context.Context) error {
	cursor := 0
	status := ""
	for {
		v, err := o.dispatcher.View()
		if err != nil {
			return err
		}

		prog := tea.NewProgram(newOverviewModel(v, cursor, status),
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithInput(o.in),
			tea.WithOutput(o.out),
		)

		watchCtx, cancel := context.WithCancel(ctx)
		if o.watch != nil {
			err := o.watch(watchCtx, func() {
				if v, err := o.dispatcher.View(); err == nil {
					prog.Send(refreshMsg{view: v})
				}
			})
			if err != nil {
				logging.Warn("Overview live refresh unavailable", "error", err)
			}
		}

		final, err := prog.Run()
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("overview failed: %w", err)
		}

		m := final.(overviewModel)
		if m.pending == nil {
			return nil
		}
		cursor = m.cursor

		status = ""
		if _, err := o.dispatcher.Dispatch(ctx, *m.pending); err != nil {
			status = fmt.Sprintf("%s: %v", m.pending.Command, err)
		}
	}
}
