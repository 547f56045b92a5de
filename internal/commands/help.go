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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "tasksync help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  tasksync                                           List all tasks
  tasksync list [common flags] [--filter <mode>] [--output <format>]
  tasksync add [common flags] <title...>
  tasksync create [common flags] <title...>
  tasksync rename [common flags] <ref> <title...>
  tasksync toggle [common flags] <ref>
  tasksync done [common flags] <ref>
  tasksync undo [common flags] <ref>
  tasksync rm [common flags] <ref>
  tasksync toggle-all [common flags]
  tasksync clear [common flags]
  tasksync shell [common flags]                      Run commands against one session
  tasksync tui [common flags]                        Interactive view
  tasksync help
  tasksync version

Task references:
  <n>              Position as printed by list (counting all tasks)
  #<id>            Remote task id

Filter modes: all, active, completed
Output formats: text, json, yaml

Common flags:
  --user <id>      Owner id (overrides TODOS_USER_ID)
  --api <url>      API base URL (overrides TODOS_API_URL)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
