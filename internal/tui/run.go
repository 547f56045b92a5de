package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"tasksync/internal/engine"
)

// Run shows the interactive view until the user quits or ctx is cancelled.
// in and out default to the terminal when nil.
func Run(ctx context.Context, eng *engine.Engine, in io.Reader, out io.Writer) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}

	program := tea.NewProgram(New(ctx, eng), opts...)

	// Listeners may fire on the event loop itself (Dismiss), where a
	// blocking Send would never be received.
	unsubscribe := eng.Subscribe(func() {
		go program.Send(changedMsg{})
	})
	defer unsubscribe()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
