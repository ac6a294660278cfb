package api

import (
	"context"
	"net/url"
	"strconv"

	"portal-cli/internal/model"
)

// FetchTask seeds (or reseeds) a task view. It is not part of the
// reconciliation protocol itself; a failure here is surfaced to the caller
// as fatal-to-the-view with a manual retry.
func (c *Client) FetchTask(ctx context.Context, taskID string) (model.Task, error) {
	var t model.Task
	err := c.get(ctx, "/api/tasks/"+url.PathEscape(taskID), nil, &t)
	return t, err
}

func (c *Client) ListTasks(ctx context.Context, assignedToMe bool) ([]model.Task, error) {
	q := url.Values{}
	if assignedToMe {
		q.Set("mine", "true")
	}
	var out struct {
		Data []model.Task `json:"data"`
	}
	err := c.get(ctx, "/api/tasks", q, &out)
	return out.Data, err
}

// SetChecklistItem persists a checklist toggle. The body carries only the
// target value; the server answers 204.
func (c *Client) SetChecklistItem(ctx context.Context, taskID, itemID string, isCompleted bool) error {
	body := map[string]any{"isCompleted": isCompleted}
	return c.put(ctx, "/api/tasks/"+url.PathEscape(taskID)+"/checklist/"+url.PathEscape(itemID), body, nil)
}

func (c *Client) SetTaskStatus(ctx context.Context, taskID string, status model.TaskStatus) error {
	body := map[string]any{"status": status}
	return c.put(ctx, "/api/tasks/"+url.PathEscape(taskID)+"/status", body, nil)
}

// CreateComment returns the server-assigned comment id used for the
// optimistic id swap.
func (c *Client) CreateComment(ctx context.Context, taskID, text string) (string, error) {
	body := map[string]any{"text": text}
	var out struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/api/tasks/"+url.PathEscape(taskID)+"/comments", body, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) ListComments(ctx context.Context, taskID string, limit int) ([]model.Comment, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Data []model.Comment `json:"data"`
	}
	err := c.get(ctx, "/api/tasks/"+url.PathEscape(taskID)+"/comments", q, &out)
	return out.Data, err
}
