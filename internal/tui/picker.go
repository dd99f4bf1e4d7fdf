package tui

import (
	"fmt"
	"io"
	"strings"

	"projectswitch/internal/prompt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 20
)

// pickItem adapts a prompt.Item to the list
type pickItem struct {
	prompt.Item
}

// FilterValue matches on label, description and detail. Separators have
// no filter value so they drop out while filtering.
func (i pickItem) FilterValue() string {
	if i.Separator {
		return ""
	}
	return strings.TrimSpace(i.Label + " " + i.Description + " " + i.Detail)
}

// pickDelegate renders two lines per row: label with description, then
// detail
type pickDelegate struct{}

func (d pickDelegate) Height() int                               { return 2 }
func (d pickDelegate) Spacing() int                              { return 0 }
func (d pickDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d pickDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(pickItem)
	if !ok {
		return
	}
	if it.Separator {
		fmt.Fprintf(w, "%s\n", separatorStyle.Render("── "+it.Label+" ──"))
		return
	}

	cursor, style := "  ", normalStyle
	if index == m.Index() {
		cursor, style = "> ", selectedStyle
	}
	line := cursor + style.Render(it.Label)
	if it.Description != "" {
		line += "  " + dimStyle.Render(it.Description)
	}
	fmt.Fprintf(w, "%s\n    %s", line, dimStyle.Render(it.Detail))
}

type pickerKeyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var pickerKeys = pickerKeyMap{
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Quit:  key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
}

// pickerModel is a filterable list whose separators cannot be selected
type pickerModel struct {
	list      list.Model
	selected  *prompt.Item
	cancelled bool
}

func newPickerModel(title string, items []prompt.Item) pickerModel {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = pickItem{it}
	}

	l := list.New(listItems, pickDelegate{}, defaultWidth, defaultHeight)
	l.Title = title
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	m := pickerModel{list: l}
	m.skipSeparators(true)
	return m
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, pickerKeys.Quit):
			if m.list.FilterState() == list.FilterApplied {
				m.list.ResetFilter()
				m.skipSeparators(true)
				return m, nil
			}
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, pickerKeys.Enter):
			if it, ok := m.list.SelectedItem().(pickItem); ok && !it.Separator {
				item := it.Item
				m.selected = &item
				return m, tea.Quit
			}
			return m, nil
		}
	}

	before := m.list.Index()
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.skipSeparators(m.list.Index() >= before)
	return m, cmd
}

// skipSeparators moves the cursor off a separator, preferring the given
// direction and turning around at the end of the list
func (m *pickerModel) skipSeparators(down bool) {
	n := len(m.list.VisibleItems())
	for i := 0; i < n; i++ {
		it, ok := m.list.SelectedItem().(pickItem)
		if !ok || !it.Separator {
			return
		}
		if down && m.list.Index() >= n-1 {
			down = false
		} else if !down && m.list.Index() == 0 {
			down = true
		}
		if down {
			m.list.CursorDown()
		} else {
			m.list.CursorUp()
		}
	}
}

func (m pickerModel) View() string {
	if m.selected != nil || m.cancelled {
		return ""
	}
	return containerStyle.Render(m.list.View())
}
