package commands

import (
	"errors"
	"fmt"
	"io"

	"tasksync/internal/config"
	"tasksync/internal/engine"
	"tasksync/internal/exitcode"
	"tasksync/internal/service"
)

// report prints err and maps it to an exit code. Contract violations and
// rejected input are user errors; everything the store refused is a
// backend error.
func report(errOut io.Writer, err error) int {
	switch kind := engine.KindOf(err); {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, engine.ErrLocked), errors.Is(err, engine.ErrBusy):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case kind == engine.ValidationFailed:
		fmt.Fprintf(errOut, "error: %s\n", kind.Message())
		return exitcode.UserError
	case kind != engine.KindNone:
		fmt.Fprintf(errOut, "error: %s\n", kind.Message())
		return exitcode.BackendError
	default:
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
}

// ack prints the success acknowledgement unless quiet.
func ack(cfg *config.Config, out io.Writer) int {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// taskArg parses and resolves the task reference at the front of args.
// On failure it prints the reason and returns false.
func taskArg(eng *engine.Engine, args []string, errOut io.Writer) (service.Task, []string, bool) {
	ref, rest, err := ParseTaskRef(args)
	if err == nil {
		var task service.Task
		if task, err = ResolveTaskRef(eng, ref); err == nil {
			return task, rest, true
		}
	}
	fmt.Fprintf(errOut, "error: %v\n", err)
	return service.Task{}, nil, false
}
