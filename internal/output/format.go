// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"tasksync/internal/config"
	"tasksync/internal/engine"
	"tasksync/internal/service"
)

// Format selects how a task list is written.
type Format string

const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", Text:
		return Text, nil
	case JSON, YAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid output format: %s", s)
	}
}

// FormatTask formats one task row.
// Format: "{N:>4}  [x] {TITLE}\n", with " (pending)" appended while a
// request for the task is in flight.
func FormatTask(w io.Writer, num int, task service.Task, pending bool) {
	fmt.Fprintf(w, "%4d  %s %s%s\n", num, checkbox(task.Completed), normalizeTitle(task.Title), pendingSuffix(pending))
}

// FormatPlaceholder formats the row of a task that is still being saved.
func FormatPlaceholder(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "%4s  %s %s (saving)\n", "-", checkbox(false), normalizeTitle(task.Title))
}

// FormatFooter formats the active counter.
func FormatFooter(w io.Writer, active int) {
	fmt.Fprintf(w, "%d items left\n", active)
}

// FormatNotification writes the banner as an error line. Nothing is written
// when no banner is visible.
func FormatNotification(w io.Writer, n engine.Notification) {
	if !n.Visible() {
		return
	}
	fmt.Fprintf(w, "error: %s\n", n.Message)
}

// FormatConfigWarning explains how to configure the owner id.
func FormatConfigWarning(w io.Writer) {
	fmt.Fprintf(w, "error: %s is not set\n\n", config.OwnerEnv)
	fmt.Fprintln(w, "Every task belongs to a user id on the todos API. Set it with:")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "   export %s=<your user id>\n", config.OwnerEnv)
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "or pass --user <id>, then run the command again.")
}

// WriteJSON writes tasks as an indented JSON array.
func WriteJSON(w io.Writer, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

// WriteYAML writes tasks as a YAML sequence.
func WriteYAML(w io.Writer, tasks []service.Task) error {
	if tasks == nil {
		tasks = []service.Task{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return err
	}
	return enc.Close()
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func pendingSuffix(pending bool) string {
	if pending {
		return " (pending)"
	}
	return ""
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
