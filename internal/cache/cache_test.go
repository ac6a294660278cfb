package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"portal-cli/internal/model"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), "cache.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestTaskRoundTrip(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	task := model.Task{
		ID:     "task-1",
		Title:  "Quarterly report",
		Status: model.StatusOpen,
		Checklist: []model.ChecklistItem{
			{ID: "c1", Text: "Draft", IsCompleted: true},
		},
	}
	if err := c.PutTask(ctx, task); err != nil {
		t.Fatalf("PutTask: %v", err)
	}

	got, fetchedAt, ok, err := c.GetTask(ctx, "task-1")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if !ok {
		t.Fatalf("expected a hit")
	}
	if got.Title != task.Title || len(got.Checklist) != 1 {
		t.Fatalf("got %+v", got)
	}
	if time.Since(fetchedAt) > time.Minute {
		t.Fatalf("fetchedAt = %v", fetchedAt)
	}
}

func TestGetTask_MissIsNotAnError(t *testing.T) {
	c := openTestCache(t)

	_, _, ok, err := c.GetTask(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if ok {
		t.Fatalf("expected a miss")
	}
}

func TestNewsList_ReplaceKeepsOrder(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	first := []model.NewsPost{
		{ID: "n1", Title: "Old"},
		{ID: "n2", Title: "Older"},
	}
	if err := c.PutNews(ctx, first); err != nil {
		t.Fatalf("PutNews: %v", err)
	}

	second := []model.NewsPost{
		{ID: "n3", Title: "Town hall Friday"},
		{ID: "n1", Title: "Old, repinned"},
	}
	if err := c.PutNews(ctx, second); err != nil {
		t.Fatalf("PutNews: %v", err)
	}

	got, err := c.ListNews(ctx)
	if err != nil {
		t.Fatalf("ListNews: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].ID != "n3" || got[1].ID != "n1" {
		t.Fatalf("order = %s, %s", got[0].ID, got[1].ID)
	}
	if got[1].Title != "Old, repinned" {
		t.Fatalf("replace did not overwrite: %q", got[1].Title)
	}
}
