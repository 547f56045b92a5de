// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"tasksync/internal/service"
)

// ErrInjected is a convenient error for failure injection.
var ErrInjected = errors.New("request failed")

// Call records one request made against FakeService.
type Call struct {
	Op    string // "list", "create", "delete" or "update"
	ID    int
	Title string
	Patch service.Patch
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	tasks  []service.Task
	nextID int
	owner  int
	calls  []Call
	gate   chan struct{}

	// Error injection for testing
	ListErr   error
	CreateErr error
	DeleteErr map[int]error // task id -> error
	UpdateErr map[int]error // task id -> error
}

// NewFakeService creates an empty FakeService for the given owner.
func NewFakeService(owner int) *FakeService {
	return &FakeService{
		owner:     owner,
		nextID:    1,
		DeleteErr: make(map[int]error),
		UpdateErr: make(map[int]error),
	}
}

// AddTask seeds a task with an explicit id.
func (f *FakeService) AddTask(id int, title string, completed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Completed: completed, OwnerID: f.owner})
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

// Hold makes every subsequent request block until Release is called.
func (f *FakeService) Hold() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = make(chan struct{})
}

// Release unblocks all held requests.
func (f *FakeService) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate != nil {
		close(f.gate)
		f.gate = nil
	}
}

// Calls returns a copy of the recorded requests.
func (f *FakeService) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many requests have been issued.
func (f *FakeService) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// CallsFor returns the recorded calls of one op, sorted by id.
func (f *FakeService) CallsFor(op string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Stored returns the tasks the fake "server" currently holds.
func (f *FakeService) Stored() []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// enter records the call and blocks while the gate is held.
func (f *FakeService) enter(ctx context.Context, c Call) error {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	gate := f.gate
	f.mu.Unlock()

	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	if err := f.enter(ctx, Call{Op: "list"}); err != nil {
		return nil, err
	}
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Stored(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, title string) (service.Task, error) {
	if err := f.enter(ctx, Call{Op: "create", Title: title}); err != nil {
		return service.Task{}, err
	}
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{ID: f.nextID, Title: strings.TrimSpace(title), OwnerID: f.owner}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	if err := f.enter(ctx, Call{Op: "delete", ID: id}); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.DeleteErr[id]; err != nil {
		return err
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, patch service.Patch) (service.Task, error) {
	if err := f.enter(ctx, Call{Op: "update", ID: id, Patch: patch}); err != nil {
		return service.Task{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.UpdateErr[id]; err != nil {
		return service.Task{}, err
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i] = patch.Apply(t)
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrInjected
}
