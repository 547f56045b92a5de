// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/engine"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or changes tasks.
	// Commands like help and version return false and run without an
	// owner id.
	NeedsStore() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided.
	// eng is loaded when NeedsStore() returns true, nil otherwise.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, eng *engine.Engine, args []string, out, errOut io.Writer) int
}

// Interactive is implemented by commands that keep running when the
// initial load fails; they show the failure in their own banner.
type Interactive interface {
	Interactive() bool
}

// IsInteractive reports whether cmd tolerates a failed initial load.
func IsInteractive(cmd Command) bool {
	i, ok := cmd.(Interactive)
	return ok && i.Interactive()
}
