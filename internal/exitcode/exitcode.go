// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty title, unknown task, locked task).
	UserError = 1

	// ConfigError indicates missing or invalid configuration, such as no owner id.
	ConfigError = 2

	// BackendError indicates a remote store or network failure.
	BackendError = 3
)
