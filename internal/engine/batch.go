package engine

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"tasksync/internal/service"
)

// BatchResult partitions the ids of a bulk operation by outcome.
type BatchResult struct {
	Succeeded []int
	Failed    []int
	Err       error // every failure, joined
}

// OK reports whether every request succeeded.
func (r BatchResult) OK() bool {
	return len(r.Failed) == 0
}

// ToggleAll completes every incomplete task, or, when all tasks are
// already completed, marks them all incomplete. Only tasks whose flag
// differs from the target get a request. Requests run concurrently and all
// of them settle; successes are applied, and any number of failures raise
// a single notification. It is a no-op on an empty collection.
func (e *Engine) ToggleAll(ctx context.Context) (BatchResult, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return BatchResult{}, ErrClosed
	}
	target := false
	for _, t := range e.tasks {
		if !t.Completed {
			target = true
			break
		}
	}
	var ids []int
	for _, t := range e.tasks {
		if t.Completed != target {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		e.mu.Unlock()
		return BatchResult{}, nil
	}
	err := e.acquireLocked(ids)
	e.mu.Unlock()
	if err != nil {
		return BatchResult{}, err
	}
	e.changed()
	defer e.release(ids...)

	patch := service.CompletedPatch(target)
	res := e.runBatch(ctx, ids, func(ctx context.Context, id int) error {
		_, err := e.svc.UpdateTask(ctx, id, patch)
		return err
	})
	e.log.Debug("toggled all", "completed", target, "succeeded", len(res.Succeeded), "failed", len(res.Failed))

	var opErr error
	if !res.OK() {
		opErr = e.fail(UpdateFailed, 0, res.Err)
	}
	if len(res.Succeeded) > 0 {
		e.update(patch, res.Succeeded...)
	}
	return res, opErr
}

// ClearCompleted deletes every completed task concurrently. Tasks whose
// delete failed stay in the collection and are no longer pending; any
// number of failures raise a single notification.
func (e *Engine) ClearCompleted(ctx context.Context) (BatchResult, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return BatchResult{}, ErrClosed
	}
	var ids []int
	for _, t := range e.tasks {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	if len(ids) == 0 {
		e.mu.Unlock()
		return BatchResult{}, nil
	}
	err := e.acquireLocked(ids)
	e.mu.Unlock()
	if err != nil {
		return BatchResult{}, err
	}
	e.changed()
	defer e.release(ids...)

	res := e.runBatch(ctx, ids, e.svc.DeleteTask)
	e.log.Debug("cleared completed", "succeeded", len(res.Succeeded), "failed", len(res.Failed))

	var opErr error
	if !res.OK() {
		opErr = e.fail(DeleteFailed, 0, res.Err)
	}
	if len(res.Succeeded) > 0 {
		e.remove(res.Succeeded...)
	}
	return res, opErr
}

// runBatch calls fn once per id and waits for every call to return. A
// failure never cancels the others.
func (e *Engine) runBatch(ctx context.Context, ids []int, fn func(context.Context, int) error) BatchResult {
	errs := make([]error, len(ids))

	var g errgroup.Group
	if e.limit > 0 {
		g.SetLimit(e.limit)
	}
	for i, id := range ids {
		g.Go(func() error {
			errs[i] = fn(ctx, id)
			return nil
		})
	}
	_ = g.Wait()

	var res BatchResult
	for i, id := range ids {
		if errs[i] != nil {
			res.Failed = append(res.Failed, id)
		} else {
			res.Succeeded = append(res.Succeeded, id)
		}
	}
	res.Err = errors.Join(errs...)
	return res
}
