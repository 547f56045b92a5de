package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasksync/internal/filter"
	"tasksync/internal/service"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	pendingStyle  = lipgloss.NewStyle().Faint(true)
	filterStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("todos"))
	b.WriteString("\n\n")

	if n := m.eng.Notification(); n.Visible() {
		b.WriteString(bannerStyle.Render(n.Message + "  (x)"))
		b.WriteString("\n\n")
	}

	switch {
	case m.mode == modeAdd && !m.eng.CanCreate():
		b.WriteString(pendingStyle.Render("> " + m.input.Value()))
	case m.mode == modeAdd:
		b.WriteString(m.input.View())
	default:
		b.WriteString(helpStyle.Render("a: new todo"))
	}
	b.WriteString("\n\n")

	rows := m.rows()
	for i, task := range rows {
		b.WriteString(m.renderRow(i, task))
		b.WriteByte('\n')
	}
	if p, ok := m.eng.Placeholder(); ok && m.filter != filter.Completed {
		fmt.Fprintf(&b, "  %s [ ] %s\n", m.spinner.View(), pendingStyle.Render(p.Title))
	}

	if all := m.eng.Tasks(filter.All); len(all) > 0 {
		b.WriteByte('\n')
		b.WriteString(m.renderFooter())
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) renderRow(i int, task service.Task) string {
	cursor := "  "
	if i == m.cursor {
		cursor = cursorStyle.Render("> ")
	}

	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}

	if m.mode == modeEdit && task.ID == m.editID {
		return cursor + check + " " + m.edit.View()
	}

	title := task.Title
	if task.Completed {
		title = doneStyle.Render(title)
	}

	mark := ""
	if m.eng.IsLocked(task.ID) {
		mark = " " + m.spinner.View()
		title = pendingStyle.Render(task.Title)
	}
	return cursor + check + " " + title + mark
}

func (m Model) renderFooter() string {
	parts := []string{fmt.Sprintf("%d items left", m.eng.ActiveCount())}

	var tabs []string
	for i, f := range filter.Modes {
		label := fmt.Sprintf("%d:%s", i+1, f.Title())
		if f == m.filter {
			tabs = append(tabs, selectedStyle.Render(label))
		} else {
			tabs = append(tabs, filterStyle.Render(label))
		}
	}
	parts = append(parts, strings.Join(tabs, " "))

	if m.eng.HasCompleted() {
		parts = append(parts, "c: clear completed")
	}
	return strings.Join(parts, "   ")
}

func (m Model) helpLine() string {
	switch m.mode {
	case modeAdd:
		return "enter: save • esc: back"
	case modeEdit:
		return "enter: save • esc: cancel • empty title deletes"
	default:
		return "j/k: move • space: toggle • e: edit • d: delete • A: toggle all • r: reload • q: quit"
	}
}
