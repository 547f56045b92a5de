package restapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"tasksync/internal/service"
)

const todosPath = "/todos"

type createRequest struct {
	Title     string `json:"title"`
	UserID    int    `json:"userId"`
	Completed bool   `json:"completed"`
}

// ListTasks returns all tasks of the owner.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	q := url.Values{}
	q.Set("userId", strconv.Itoa(c.ownerID))

	var tasks []service.Task
	if err := c.get(ctx, todosPath+"?"+q.Encode(), &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask creates an incomplete task with the trimmed title.
func (c *Client) CreateTask(ctx context.Context, title string) (service.Task, error) {
	var task service.Task
	err := c.post(ctx, todosPath, createRequest{
		Title:     strings.TrimSpace(title),
		UserID:    c.ownerID,
		Completed: false,
	}, &task)
	if err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task by id.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.delete(ctx, taskPath(id))
}

// UpdateTask patches only the fields set in patch.
func (c *Client) UpdateTask(ctx context.Context, id int, patch service.Patch) (service.Task, error) {
	if err := patch.Validate(); err != nil {
		return service.Task{}, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	var task service.Task
	if err := c.patch(ctx, taskPath(id), patch, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

func taskPath(id int) string {
	return todosPath + "/" + strconv.Itoa(id)
}
