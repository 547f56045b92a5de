package commands

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"tasksync/internal/config"
	"tasksync/internal/engine"
	"tasksync/internal/exitcode"
	"tasksync/internal/output"
)

func init() {
	Register(&ShellCmd{})
}

// ShellCmd runs commands line by line against one engine, so the task
// collection, pending set and banner carry over between lines.
type ShellCmd struct {
	in io.Reader
}

// SetInput sets the line source (for testing).
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return []string{"repl"} }
func (c *ShellCmd) Synopsis() string  { return "Run commands against one session" }
func (c *ShellCmd) Usage() string     { return "tasksync shell" }
func (c *ShellCmd) NeedsStore() bool  { return true }
func (c *ShellCmd) Interactive() bool { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}

	// A failed initial load is shown once; the session continues with an
	// empty list and `reload` can retry.
	output.FormatNotification(errOut, eng.Notification())

	scanner := bufio.NewScanner(in)
	last := exitcode.Success
	for {
		if !cfg.Quiet {
			fmt.Fprint(out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch name := strings.ToLower(fields[0]); name {
		case "quit", "exit":
			return last
		case "reload":
			last = c.reload(ctx, eng, errOut)
		case "dismiss":
			eng.Dismiss()
			last = exitcode.Success
		default:
			last = c.exec(ctx, cfg, eng, name, fields[1:], out, errOut)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return last
}

func (c *ShellCmd) reload(ctx context.Context, eng *engine.Engine, errOut io.Writer) int {
	err := eng.Load(ctx)
	if errors.Is(err, engine.ErrLocked) {
		fmt.Fprintln(errOut, "error: requests still in flight")
		return exitcode.UserError
	}
	return report(errOut, err)
}

func (c *ShellCmd) exec(ctx context.Context, cfg *config.Config, eng *engine.Engine, name string, args []string, out, errOut io.Writer) int {
	cmd, found := DefaultRegistry.Find(name)
	if !found {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", name)
		return exitcode.UserError
	}
	if IsInteractive(cmd) {
		fmt.Fprintf(errOut, "error: %s cannot run inside the shell\n", cmd.Name())
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if !cmd.NeedsStore() {
		return cmd.Run(ctx, cfg, nil, fs.Args(), out, errOut)
	}
	return cmd.Run(ctx, cfg, eng, fs.Args(), out, errOut)
}
