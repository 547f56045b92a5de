// Package filter maps a view mode to a predicate over tasks.
package filter

import (
	"strings"

	"tasksync/internal/service"
)

// Mode selects which tasks a view shows. It is view state only and never
// reaches the remote store.
type Mode string

const (
	All       Mode = "all"
	Active    Mode = "active"
	Completed Mode = "completed"
)

// Modes lists the modes in display order.
var Modes = []Mode{All, Active, Completed}

// Parse returns the mode named by s (case-insensitive, trimmed).
// The boolean is false for unknown names, in which case All is returned.
func Parse(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case All, "":
		return All, true
	case Active:
		return Active, true
	case Completed:
		return Completed, true
	default:
		return All, false
	}
}

// Title returns the capitalized mode name for display.
func (m Mode) Title() string {
	if m == "" {
		return "All"
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Match reports whether t is visible under m. Unknown modes match everything.
func (m Mode) Match(t service.Task) bool {
	switch m {
	case Active:
		return !t.Completed
	case Completed:
		return t.Completed
	default:
		return true
	}
}

// Apply returns the tasks visible under m, preserving order. The input slice
// is never modified; for All it is returned as is.
func Apply(tasks []service.Task, m Mode) []service.Task {
	if m != Active && m != Completed {
		return tasks
	}
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if m.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
