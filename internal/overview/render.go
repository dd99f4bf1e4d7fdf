package overview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("51")).
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true).
			MarginTop(1)

	groupStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			MarginTop(1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("45"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	decorationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("226"))
)

// Title heads the rendered overview
const Title = "Project Switcher: Overview"

// Render draws the view. It depends only on its arguments.
func Render(v View, width int) string {
	if width <= 0 {
		width = 80
	}

	sections := []string{headerStyle.Render(Title), renderHotkeys(v)}

	if v.ProjectCount() == 0 && len(v.Groups) == 0 {
		sections = append(sections, dimStyle.Render("\nNo projects yet."))
	}
	for _, g := range v.Groups {
		sections = append(sections, renderGroup(g.Name, g.Projects, width))
	}
	if len(v.Ungrouped) > 0 {
		sections = append(sections, renderGroup("Ungrouped", v.Ungrouped, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func renderHotkeys(v View) string {
	rows := []string{
		sectionStyle.Render("Hotkey Settings"),
		labelStyle.Render("Switch Project:    ") + v.Keybindings.SwitchProject,
		labelStyle.Render("Manage Projects:   ") + v.Keybindings.ManageProjects,
		labelStyle.Render("Open Web Overview: ") + v.Keybindings.OpenOverview,
	}
	return strings.Join(rows, "\n")
}

func renderGroup(name string, projects []ProjectView, width int) string {
	lines := []string{sectionStyle.UnsetMarginTop().Render(name)}
	if len(projects) == 0 {
		lines = append(lines, dimStyle.Render("(no projects)"))
	}
	for _, p := range projects {
		lines = append(lines, renderProject(p))
	}
	return groupStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func renderProject(p ProjectView) string {
	head := nameStyle.Render(p.Name)
	if p.Decoration != "" {
		head += "  " + decorationStyle.Render(p.Decoration)
	}
	lines := []string{head}
	if p.Description != "" {
		lines = append(lines, "  "+p.Description)
	}
	lines = append(lines, "  "+dimStyle.Render(p.Path))

	box := "[ ]"
	if p.PersistTerminal {
		box = "[x]"
	}
	lines = append(lines, "  "+box+" Persist terminals content (not the running process)")
	return strings.Join(lines, "\n")
}
