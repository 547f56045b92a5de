package engine

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure. Each kind has one user-facing message.
type Kind int

const (
	KindNone Kind = iota
	LoadFailed
	CreateFailed
	DeleteFailed
	UpdateFailed
	ValidationFailed
)

var kindMessages = map[Kind]string{
	LoadFailed:       "Unable to load todos",
	CreateFailed:     "Unable to add a todo",
	DeleteFailed:     "Unable to delete a todo",
	UpdateFailed:     "Unable to update a todo",
	ValidationFailed: "Title should not be empty",
}

// Message returns the text shown in the notification banner.
func (k Kind) Message() string {
	return kindMessages[k]
}

func (k Kind) String() string {
	switch k {
	case LoadFailed:
		return "load_failed"
	case CreateFailed:
		return "create_failed"
	case DeleteFailed:
		return "delete_failed"
	case UpdateFailed:
		return "update_failed"
	case ValidationFailed:
		return "validation_failed"
	default:
		return "none"
	}
}

// Error is returned by engine operations whose request failed or whose
// input was rejected. The notification has already been raised when an
// Error is returned.
type Error struct {
	Kind Kind
	ID   int // zero for load, create and bulk failures
	Err  error
}

func (e *Error) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s (task %d)", e.Kind.Message(), e.ID)
	}
	return e.Kind.Message()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindNone if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}

// Contract violations. These never raise a notification.
var (
	// ErrLocked is returned when an operation targets a task that already
	// has a request in flight, when a reload would clobber one, or when any
	// mutation is attempted while a reload is in flight.
	ErrLocked = errors.New("task is locked by a pending request")

	// ErrBusy is returned by Create while another create is in flight.
	ErrBusy = errors.New("a task is already being created")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("engine is closed")
)
