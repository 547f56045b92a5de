package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"tasksync/internal/config"
	"tasksync/internal/engine"
	"tasksync/internal/exitcode"
)

func init() {
	Register(&RenameCmd{})
}

// RenameCmd implements the rename command. A blank title deletes the task.
type RenameCmd struct{}

func (c *RenameCmd) Name() string      { return "rename" }
func (c *RenameCmd) Aliases() []string { return []string{"edit"} }
func (c *RenameCmd) Synopsis() string  { return "Change a task's title" }
func (c *RenameCmd) Usage() string     { return "tasksync rename <ref> <title...>" }
func (c *RenameCmd) NeedsStore() bool  { return true }

func (c *RenameCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RenameCmd) Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int {
	task, rest, found := taskArg(eng, args, errOut)
	if !found {
		return exitcode.UserError
	}
	if len(rest) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	if err := eng.Rename(ctx, task.ID, strings.Join(rest, " ")); err != nil {
		return report(errOut, err)
	}
	return ack(cfg, out)
}
