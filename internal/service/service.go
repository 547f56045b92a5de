// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Every call is scoped to the owner id the implementation was built with.
// Implementations report any failure with a single generic error; callers
// must not try to tell a missing task from a server or network failure.
type Service interface {
	// ListTasks returns all tasks of the owner in store order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates an incomplete task with the trimmed title and
	// returns it with its store-assigned id.
	CreateTask(ctx context.Context, title string) (Task, error)

	// DeleteTask deletes a task by id.
	DeleteTask(ctx context.Context, id int) error

	// UpdateTask sends only the fields set in patch and returns the
	// updated task.
	UpdateTask(ctx context.Context, id int, patch Patch) (Task, error)
}
