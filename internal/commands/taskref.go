package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"tasksync/internal/engine"
	"tasksync/internal/filter"
	"tasksync/internal/service"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num  int  // 1-based position in the unfiltered list
	ID   int  // remote id
	ByID bool // true if written as #ID
}

func (r TaskRef) String() string {
	if r.ByID {
		return "#" + strconv.Itoa(r.ID)
	}
	return strconv.Itoa(r.Num)
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses the task reference in args[0] and returns the
// remaining args.
//
// Accepted forms:
//  1. all digits (e.g. 3) → position in the list as printed by `list`
//  2. # followed by digits (e.g. #42) → remote task id
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 {
		return TaskRef{}, nil, ErrTaskRefRequired
	}
	first, rest := args[0], args[1:]

	if isAllDigits(first) {
		num, err := strconv.Atoi(first)
		if err != nil {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{Num: num}, rest, nil
	}

	if digits, ok := strings.CutPrefix(first, "#"); ok && isAllDigits(digits) {
		id, err := strconv.Atoi(digits)
		if err != nil || id == service.PlaceholderID {
			return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
		}
		return TaskRef{ID: id, ByID: true}, rest, nil
	}

	return TaskRef{}, nil, fmt.Errorf("invalid task reference: %s", first)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTaskRef finds the task a reference points at.
func ResolveTaskRef(eng *engine.Engine, ref TaskRef) (service.Task, error) {
	if ref.ByID {
		task, ok := eng.Task(ref.ID)
		if !ok {
			return service.Task{}, fmt.Errorf("task not found: %s", ref)
		}
		return task, nil
	}

	tasks := eng.Tasks(filter.All)
	if ref.Num < 1 || ref.Num > len(tasks) {
		return service.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
	}
	return tasks[ref.Num-1], nil
}
