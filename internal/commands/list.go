package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/engine"
	"tasksync/internal/exitcode"
	"tasksync/internal/filter"
	"tasksync/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `tasksync` (no args) and `tasksync list`.
type ListCmd struct {
	filterName string
	outputName string
}

// SetFilter sets the filter mode (for testing).
func (c *ListCmd) SetFilter(name string) {
	c.filterName = name
}

// SetOutput sets the output format (for testing).
func (c *ListCmd) SetOutput(name string) {
	c.outputName = name
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "tasksync list [--filter all|active|completed] [--output text|json|yaml]"
}
func (c *ListCmd) NeedsStore() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filterName, "filter", string(filter.All), "")
	fs.StringVar(&c.filterName, "f", string(filter.All), "")
	fs.StringVar(&c.outputName, "output", string(output.Text), "")
	fs.StringVar(&c.outputName, "o", string(output.Text), "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	mode, valid := filter.Parse(c.filterName)
	if !valid {
		fmt.Fprintf(errOut, "error: invalid filter: %s\n", c.filterName)
		return exitcode.UserError
	}

	format, err := output.ParseFormat(c.outputName)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	switch format {
	case output.JSON:
		err = output.WriteJSON(out, eng.Tasks(mode))
	case output.YAML:
		err = output.WriteYAML(out, eng.Tasks(mode))
	default:
		renderTasks(out, eng, mode, cfg.Quiet)
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

// renderTasks writes the rows visible under mode, the placeholder row while
// a create is in flight, and the active counter. Rows are numbered by
// their position in the unfiltered collection so a number always names the
// same task whichever filter printed it.
func renderTasks(out io.Writer, eng *engine.Engine, mode filter.Mode, quiet bool) {
	all := eng.Tasks(filter.All)
	placeholder, creating := eng.Placeholder()

	if len(all) == 0 && !creating {
		if !quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return
	}

	for i, task := range all {
		if mode.Match(task) {
			output.FormatTask(out, i+1, task, eng.IsLocked(task.ID))
		}
	}
	if creating && mode != filter.Completed {
		output.FormatPlaceholder(out, placeholder)
	}
	if len(all) > 0 && !quiet {
		output.FormatFooter(out, eng.ActiveCount())
	}
}
