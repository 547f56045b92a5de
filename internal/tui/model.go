// Package tui is the interactive terminal view over an engine.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasksync/internal/engine"
	"tasksync/internal/filter"
	"tasksync/internal/service"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// changedMsg is sent whenever the engine state changes.
type changedMsg struct{}

// createdMsg carries the outcome of a create.
type createdMsg struct {
	title string
	err   error
}

// renamedMsg carries the outcome of a rename started from the edit field.
type renamedMsg struct {
	id  int
	err error
}

// opMsg carries the outcome of any other operation. Failures are already
// on the engine's banner.
type opMsg struct {
	err error
}

// Model is the bubbletea model.
type Model struct {
	ctx     context.Context
	eng     *engine.Engine
	filter  filter.Mode
	cursor  int
	mode    mode
	input   textinput.Model
	edit    textinput.Model
	editID  int
	spinner spinner.Model
	width   int
}

// New returns a model over eng. Operations started from the view run with ctx.
func New(ctx context.Context, eng *engine.Engine) Model {
	in := textinput.New()
	in.Placeholder = "What needs to be done?"
	in.CharLimit = 256
	in.Width = 40

	ed := textinput.New()
	ed.CharLimit = 256
	ed.Width = 40

	return Model{
		ctx:     ctx,
		eng:     eng,
		filter:  filter.All,
		input:   in,
		edit:    ed,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg)
		case modeEdit:
			return m.updateEditMode(msg)
		default:
			return m.updateListMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-10, 10)
		m.edit.Width = max(msg.Width-10, 10)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case changedMsg:
		m.cursor = clampCursor(m.cursor, len(m.rows()))
	case createdMsg:
		// The typed title survives a failed create so it can be retried.
		if msg.err == nil && m.input.Value() == msg.title {
			m.input.Reset()
		}
	case renamedMsg:
		if m.mode == modeEdit && m.editID == msg.id && msg.err == nil {
			m.closeEdit()
		}
		m.cursor = clampCursor(m.cursor, len(m.rows()))
	case opMsg:
		m.cursor = clampCursor(m.cursor, len(m.rows()))
	}
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	rows := m.rows()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "j", "down":
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case "k", "up":
		m.cursor = clampCursor(m.cursor-1, len(rows))
	case "1":
		m.setFilter(filter.All)
	case "2":
		m.setFilter(filter.Active)
	case "3":
		m.setFilter(filter.Completed)
	case "x":
		m.eng.Dismiss()
	case "a":
		m.mode = modeAdd
		return m, m.input.Focus()
	case " ":
		task, ok := m.selected()
		if !ok || m.eng.IsLocked(task.ID) {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			return m.eng.ToggleOne(ctx, task.ID, !task.Completed)
		})
	case "d":
		task, ok := m.selected()
		if !ok || m.eng.IsLocked(task.ID) {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			return m.eng.Delete(ctx, task.ID)
		})
	case "e", "enter":
		task, ok := m.selected()
		if !ok || m.eng.IsLocked(task.ID) {
			return m, nil
		}
		m.mode = modeEdit
		m.editID = task.ID
		m.edit.SetValue(task.Title)
		m.edit.CursorEnd()
		return m, m.edit.Focus()
	case "A":
		if len(m.eng.PendingIDs()) > 0 || len(m.eng.Tasks(filter.All)) == 0 {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			_, err := m.eng.ToggleAll(ctx)
			return err
		})
	case "c":
		if len(m.eng.PendingIDs()) > 0 || !m.eng.HasCompleted() {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) error {
			_, err := m.eng.ClearCompleted(ctx)
			return err
		})
	case "r":
		return m, m.run(m.eng.Load)
	}
	return m, nil
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeList
		m.input.Blur()
		return m, nil
	}

	// The field is frozen while a create is in flight or any task is pending.
	if !m.eng.CanCreate() {
		return m, nil
	}

	if msg.String() == "enter" {
		title := m.input.Value()
		return m, func() tea.Msg {
			_, err := m.eng.Create(m.ctx, title)
			return createdMsg{title: title, err: err}
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEditMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.closeEdit()
		return m, nil
	}

	if m.eng.IsLocked(m.editID) {
		return m, nil
	}

	if msg.String() == "enter" {
		task, ok := m.eng.Task(m.editID)
		if !ok {
			m.closeEdit()
			return m, nil
		}
		title := m.edit.Value()
		if strings.TrimSpace(title) == task.Title {
			m.closeEdit()
			return m, nil
		}
		id := m.editID
		return m, func() tea.Msg {
			return renamedMsg{id: id, err: m.eng.Rename(m.ctx, id, title)}
		}
	}

	var cmd tea.Cmd
	m.edit, cmd = m.edit.Update(msg)
	return m, cmd
}

// run wraps an engine call in a command. Contract refusals are dropped;
// the engine already put every other failure on the banner.
func (m Model) run(fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		err := fn(ctx)
		if errors.Is(err, engine.ErrLocked) || errors.Is(err, engine.ErrBusy) {
			err = nil
		}
		return opMsg{err: err}
	}
}

func (m *Model) setFilter(f filter.Mode) {
	m.filter = f
	m.cursor = clampCursor(m.cursor, len(m.rows()))
}

func (m *Model) closeEdit() {
	m.mode = modeList
	m.editID = 0
	m.edit.Blur()
	m.edit.Reset()
}

// rows returns the tasks visible under the current filter.
func (m Model) rows() []service.Task {
	return m.eng.Tasks(m.filter)
}

func (m Model) selected() (service.Task, bool) {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return service.Task{}, false
	}
	return rows[m.cursor], true
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
