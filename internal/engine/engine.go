// Package engine keeps the local task collection in step with the remote
// store. It applies the result of every request to the one task it
// concerns, tracks which tasks have a request in flight, and turns every
// failure into a transient notification.
//
// All state lives in an Engine value; callers read it through snapshot
// views and change it only through the operations. Operations block until
// their requests settle and are safe to call from several goroutines, but
// a task with a request in flight is locked: any second operation on it
// fails with ErrLocked instead of racing the first.
package engine

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tasksync/internal/filter"
	"tasksync/internal/service"
)

// Options configures an Engine.
type Options struct {
	// OwnerID is stamped on the placeholder task.
	OwnerID int

	// NotificationTimeout defaults to DefaultNotificationTimeout.
	NotificationTimeout time.Duration

	// MaxConcurrency caps requests in flight per bulk operation. Zero is unbounded.
	MaxConcurrency int

	// Logger defaults to a discarding logger.
	Logger *slog.Logger

	// OnChange is called after every observable state change, without any
	// engine lock held. It may call back into the engine's read views.
	OnChange func()
}

// Engine owns the task collection, the pending set, the create placeholder
// and the notification banner.
type Engine struct {
	svc     service.Service
	ownerID int
	timeout time.Duration
	limit   int
	log     *slog.Logger
	loads   singleflight.Group

	subMu     sync.Mutex
	listeners map[int]func()
	nextSub   int

	mu          sync.Mutex
	tasks       []service.Task
	pending     map[int]struct{}
	placeholder *service.Task
	creating    bool
	loading     int
	note        Notification
	noteTimer   *time.Timer
	noteGen     uint64
	closed      bool
}

// New creates an Engine backed by svc. The collection starts empty; call Load.
func New(svc service.Service, opts Options) *Engine {
	e := &Engine{
		svc:       svc,
		ownerID:   opts.OwnerID,
		timeout:   opts.NotificationTimeout,
		limit:     opts.MaxConcurrency,
		log:       opts.Logger,
		pending:   make(map[int]struct{}),
		listeners: make(map[int]func()),
	}
	if e.timeout <= 0 {
		e.timeout = DefaultNotificationTimeout
	}
	if e.log == nil {
		e.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.OnChange != nil {
		e.Subscribe(opts.OnChange)
	}
	return e
}

// Subscribe registers fn to be called after every observable state change,
// like Options.OnChange. The returned func removes it.
func (e *Engine) Subscribe(fn func()) (unsubscribe func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	id := e.nextSub
	e.nextSub++
	e.listeners[id] = fn
	return func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		delete(e.listeners, id)
	}
}

// Close cancels the notification timer. Later operations fail with ErrClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.clearNoteLocked()
	e.closed = true
}

// Load replaces the collection with the store's list. It is the only bulk
// replace, so it is refused with ErrLocked while any request is in flight,
// and every mutation is refused with ErrLocked while it runs. Concurrent
// calls share one request; that request is detached from each caller's
// cancellation, and a caller whose ctx ends stops waiting for it. On
// failure the collection is left as it was.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	if err := e.idleLocked(); err != nil {
		e.mu.Unlock()
		return err
	}
	e.loading++
	e.mu.Unlock()
	e.changed()

	defer func() {
		e.mu.Lock()
		e.loading--
		e.mu.Unlock()
		e.changed()
	}()

	shared := context.WithoutCancel(ctx)
	ch := e.loads.DoChan("list", func() (any, error) {
		return e.svc.ListTasks(shared)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return e.fail(LoadFailed, 0, ctx.Err())
	}
	if res.Err != nil {
		return e.fail(LoadFailed, 0, res.Err)
	}
	tasks := res.Val.([]service.Task)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.tasks = append([]service.Task(nil), tasks...)
	e.mu.Unlock()

	e.log.Debug("loaded tasks", "count", len(tasks))
	e.changed()
	return nil
}

// Loading reports whether a Load is in flight.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading > 0
}

func (e *Engine) idleLocked() error {
	if e.closed {
		return ErrClosed
	}
	if e.creating || len(e.pending) > 0 {
		return ErrLocked
	}
	return nil
}

// Tasks returns a copy of the collection filtered by mode.
func (e *Engine) Tasks(mode filter.Mode) []service.Task {
	e.mu.Lock()
	tasks := append([]service.Task(nil), e.tasks...)
	e.mu.Unlock()
	return filter.Apply(tasks, mode)
}

// Task returns the task with the given id.
func (e *Engine) Task(id int) (service.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// IsLocked reports whether id must not be edited: it has a request in
// flight, or it is the placeholder id.
func (e *Engine) IsLocked(id int) bool {
	if id == service.PlaceholderID {
		return true
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.pending[id]
	return ok
}

// PendingIDs returns the ids with a request in flight, sorted.
func (e *Engine) PendingIDs() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pendingLocked()
}

func (e *Engine) pendingLocked() []int {
	ids := make([]int, 0, len(e.pending))
	for id := range e.pending {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Placeholder returns the "saving" task shown while a create is in flight.
func (e *Engine) Placeholder() (service.Task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.placeholder == nil {
		return service.Task{}, false
	}
	return *e.placeholder, true
}

// Creating reports whether a create request is in flight.
func (e *Engine) Creating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.creating
}

// CanCreate reports whether the new-task input should accept a submit.
// It is disabled while creating, loading, or while any task is pending.
func (e *Engine) CanCreate() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && !e.creating && e.loading == 0 && len(e.pending) == 0
}

// ActiveCount returns the number of incomplete tasks.
func (e *Engine) ActiveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, t := range e.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// HasCompleted reports whether any task is completed.
func (e *Engine) HasCompleted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, t := range e.tasks {
		if t.Completed {
			return true
		}
	}
	return false
}

// AllCompleted reports whether the collection is non-empty and every task
// is completed, i.e. ToggleAll would uncomplete everything.
func (e *Engine) AllCompleted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.tasks) == 0 {
		return false
	}
	for _, t := range e.tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// State is a consistent copy of everything the presentation layer reads.
type State struct {
	Tasks        []service.Task
	Pending      []int
	Placeholder  *service.Task
	Notification Notification
	Creating     bool
}

// Snapshot returns the whole observable state taken under one lock.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := State{
		Tasks:        append([]service.Task(nil), e.tasks...),
		Pending:      e.pendingLocked(),
		Notification: e.note,
		Creating:     e.creating,
	}
	if e.placeholder != nil {
		p := *e.placeholder
		s.Placeholder = &p
	}
	return s
}

// fail logs the failure, raises the banner and returns the error for it.
func (e *Engine) fail(kind Kind, id int, err error) *Error {
	e.log.Warn("operation failed", "kind", kind, "id", id, "err", err)
	e.notify(kind)
	return &Error{Kind: kind, ID: id, Err: err}
}

// acquire marks ids pending, all or none.
func (e *Engine) acquire(ids ...int) error {
	e.mu.Lock()
	err := e.acquireLocked(ids)
	e.mu.Unlock()
	if err == nil {
		e.changed()
	}
	return err
}

func (e *Engine) acquireLocked(ids []int) error {
	if e.closed {
		return ErrClosed
	}
	if e.loading > 0 {
		return ErrLocked
	}
	for _, id := range ids {
		if id == service.PlaceholderID {
			return ErrLocked
		}
		if _, ok := e.pending[id]; ok {
			return ErrLocked
		}
	}
	for _, id := range ids {
		e.pending[id] = struct{}{}
	}
	return nil
}

// release unmarks ids whatever the outcome of their requests.
func (e *Engine) release(ids ...int) {
	e.mu.Lock()
	for _, id := range ids {
		delete(e.pending, id)
	}
	e.mu.Unlock()
	e.changed()
}

// update applies patch to the tasks with the given ids, leaving all other
// tasks and fields untouched.
func (e *Engine) update(patch service.Patch, ids ...int) {
	set := idSet(ids)
	e.mu.Lock()
	for i, t := range e.tasks {
		if _, ok := set[t.ID]; ok {
			e.tasks[i] = patch.Apply(t)
		}
	}
	e.mu.Unlock()
	e.changed()
}

// remove drops the tasks with the given ids. Absent ids are ignored.
func (e *Engine) remove(ids ...int) {
	set := idSet(ids)
	e.mu.Lock()
	kept := e.tasks[:0:0]
	for _, t := range e.tasks {
		if _, ok := set[t.ID]; !ok {
			kept = append(kept, t)
		}
	}
	e.tasks = kept
	e.mu.Unlock()
	e.changed()
}

func (e *Engine) changed() {
	e.subMu.Lock()
	fns := make([]func(), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	e.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func idSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
