package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/engine"
	"tasksync/internal/exitcode"
)

func init() {
	Register(&ToggleAllCmd{})
	Register(&ClearCmd{})
}

// ToggleAllCmd completes every task, or reopens them all when every task is
// already completed.
type ToggleAllCmd struct{}

func (c *ToggleAllCmd) Name() string      { return "toggle-all" }
func (c *ToggleAllCmd) Aliases() []string { return nil }
func (c *ToggleAllCmd) Synopsis() string  { return "Complete all tasks, or reopen them all" }
func (c *ToggleAllCmd) Usage() string     { return "tasksync toggle-all" }
func (c *ToggleAllCmd) NeedsStore() bool  { return true }

func (c *ToggleAllCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleAllCmd) Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int {
	res, err := eng.ToggleAll(ctx)
	return reportBatch(cfg, res, err, "updated", out, errOut)
}

// ClearCmd deletes every completed task.
type ClearCmd struct{}

func (c *ClearCmd) Name() string      { return "clear" }
func (c *ClearCmd) Aliases() []string { return []string{"clear-completed"} }
func (c *ClearCmd) Synopsis() string  { return "Delete all completed tasks" }
func (c *ClearCmd) Usage() string     { return "tasksync clear" }
func (c *ClearCmd) NeedsStore() bool  { return true }

func (c *ClearCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearCmd) Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int {
	res, err := eng.ClearCompleted(ctx)
	return reportBatch(cfg, res, err, "deleted", out, errOut)
}

// reportBatch prints the outcome of a bulk operation. Partial failure is
// still a failure, but the successes are reported too.
func reportBatch(cfg *config.Config, res engine.BatchResult, err error, verb string, out, errOut io.Writer) int {
	if len(res.Succeeded) > 0 && !cfg.Quiet {
		fmt.Fprintf(out, "%s %d\n", verb, len(res.Succeeded))
	}
	if err != nil {
		if len(res.Failed) > 0 {
			fmt.Fprintf(errOut, "error: %d of %d failed\n", len(res.Failed), len(res.Failed)+len(res.Succeeded))
		}
		return report(errOut, err)
	}
	if len(res.Succeeded) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "nothing to do")
	}
	return exitcode.Success
}
