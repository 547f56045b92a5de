package commands

import (
	"context"
	"flag"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/engine"
	"tasksync/internal/exitcode"
)

func init() {
	Register(&ToggleCmd{})
	Register(&DoneCmd{})
	Register(&UndoCmd{})
}

// ToggleCmd flips a task's completion flag.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return nil }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between active and completed" }
func (c *ToggleCmd) Usage() string     { return "tasksync toggle <ref>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, eng, args, nil, out, errOut)
}

// DoneCmd marks a task completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task completed" }
func (c *DoneCmd) Usage() string     { return "tasksync done <ref>" }
func (c *DoneCmd) NeedsStore() bool  { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int {
	completed := true
	return runToggle(ctx, cfg, eng, args, &completed, out, errOut)
}

// UndoCmd marks a task active again.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return nil }
func (c *UndoCmd) Synopsis() string  { return "Mark a task active" }
func (c *UndoCmd) Usage() string     { return "tasksync undo <ref>" }
func (c *UndoCmd) NeedsStore() bool  { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int {
	completed := false
	return runToggle(ctx, cfg, eng, args, &completed, out, errOut)
}

// runToggle sets the completion flag to *want, or flips it when want is nil.
// Setting a flag the task already has sends no request.
func runToggle(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, want *bool, out, errOut io.Writer) int {
	task, _, found := taskArg(eng, args, errOut)
	if !found {
		return exitcode.UserError
	}

	completed := !task.Completed
	if want != nil {
		completed = *want
	}
	if completed == task.Completed {
		return ack(cfg, out)
	}

	if err := eng.ToggleOne(ctx, task.ID, completed); err != nil {
		return report(errOut, err)
	}
	return ack(cfg, out)
}
