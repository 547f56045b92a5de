package engine

import (
	"context"
	"strings"

	"tasksync/internal/service"
)

// Create submits a new task. A title that is blank after trimming is
// rejected without a request. While the request is in flight the
// placeholder holds the trimmed title; on success the stored task is
// appended. The placeholder is gone once Create returns.
func (e *Engine) Create(ctx context.Context, title string) (service.Task, error) {
	trimmed := strings.TrimSpace(title)

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return service.Task{}, ErrClosed
	}
	if e.creating {
		e.mu.Unlock()
		return service.Task{}, ErrBusy
	}
	if e.loading > 0 {
		e.mu.Unlock()
		return service.Task{}, ErrLocked
	}
	e.mu.Unlock()

	if trimmed == "" {
		return service.Task{}, e.fail(ValidationFailed, 0, service.ErrBlankTitle)
	}

	e.mu.Lock()
	if e.creating {
		e.mu.Unlock()
		return service.Task{}, ErrBusy
	}
	if e.loading > 0 {
		e.mu.Unlock()
		return service.Task{}, ErrLocked
	}
	e.creating = true
	e.placeholder = &service.Task{ID: service.PlaceholderID, Title: trimmed, OwnerID: e.ownerID}
	e.mu.Unlock()
	e.changed()

	defer func() {
		e.mu.Lock()
		e.placeholder = nil
		e.creating = false
		e.mu.Unlock()
		e.changed()
	}()

	created, err := e.svc.CreateTask(ctx, trimmed)
	if err != nil {
		return service.Task{}, e.fail(CreateFailed, 0, err)
	}

	e.mu.Lock()
	e.tasks = append(e.tasks, created)
	e.mu.Unlock()
	e.log.Debug("created task", "id", created.ID)
	return created, nil
}

// Delete removes a task. On failure the task stays in the collection.
// Deleting an id that is not in the collection still issues the request
// and leaves the collection unchanged.
func (e *Engine) Delete(ctx context.Context, id int) error {
	if err := e.acquire(id); err != nil {
		return err
	}
	defer e.release(id)

	if err := e.svc.DeleteTask(ctx, id); err != nil {
		return e.fail(DeleteFailed, id, err)
	}
	e.remove(id)
	return nil
}

// Rename changes a task's title. A title that is blank after trimming
// deletes the task instead; a title equal to the current one, or an
// unknown id, is a no-op. Unlike the other operations, the returned error
// is meant to be acted on: the caller keeps its edit field open.
func (e *Engine) Rename(ctx context.Context, id int, title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return e.Delete(ctx, id)
	}

	current, ok := e.Task(id)
	if !ok || current.Title == trimmed {
		return nil
	}

	if err := e.acquire(id); err != nil {
		return err
	}
	defer e.release(id)

	updated, err := e.svc.UpdateTask(ctx, id, service.TitlePatch(trimmed))
	if err != nil {
		return e.fail(UpdateFailed, id, err)
	}
	if strings.TrimSpace(updated.Title) == "" {
		updated.Title = trimmed
	}
	e.update(service.TitlePatch(updated.Title), id)
	return nil
}

// ToggleOne sets a task's completed flag.
func (e *Engine) ToggleOne(ctx context.Context, id int, completed bool) error {
	if err := e.acquire(id); err != nil {
		return err
	}
	defer e.release(id)

	updated, err := e.svc.UpdateTask(ctx, id, service.CompletedPatch(completed))
	if err != nil {
		return e.fail(UpdateFailed, id, err)
	}
	e.update(service.CompletedPatch(updated.Completed), id)
	return nil
}
