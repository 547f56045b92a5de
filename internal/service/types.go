// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"errors"
	"strings"
)

// PlaceholderID is the reserved id of a task that exists only locally while
// its create request is in flight. The remote store never assigns it.
const PlaceholderID = 0

// Task represents a single to-do item.
type Task struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
	OwnerID   int    `json:"userId" yaml:"userId"`
}

// IsPlaceholder reports whether t is the local "saving" row.
func (t Task) IsPlaceholder() bool {
	return t.ID == PlaceholderID
}

var (
	// ErrEmptyPatch is returned by Patch.Validate when no field is set.
	ErrEmptyPatch = errors.New("patch has no fields")

	// ErrBlankTitle is returned by Patch.Validate for a whitespace-only title.
	ErrBlankTitle = errors.New("title should not be empty")
)

// Patch is a partial task update. Only non-nil fields are sent.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TitlePatch returns a patch that changes only the title.
func TitlePatch(title string) Patch {
	return Patch{Title: &title}
}

// CompletedPatch returns a patch that changes only the completed flag.
func CompletedPatch(completed bool) Patch {
	return Patch{Completed: &completed}
}

// Validate checks the patch before it is serialized.
func (p Patch) Validate() error {
	if p.Title == nil && p.Completed == nil {
		return ErrEmptyPatch
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrBlankTitle
	}
	return nil
}

// Apply returns t with the patch's fields copied over.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}
