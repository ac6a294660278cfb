package tui

import (
	"context"

	"portal-cli/internal/cache"
	"portal-cli/internal/model"
)

// Cache access is best-effort: the portal is the source of truth and a broken
// local cache must never break the TUI.

func cacheTasks(ctx context.Context, tasks []model.Task) {
	path, err := cache.DefaultPath()
	if err != nil {
		return
	}
	c, err := cache.Open(ctx, path)
	if err != nil {
		return
	}
	defer c.Close()
	_ = c.PutTasks(ctx, tasks)
}

func cachedTasks(ctx context.Context) []model.Task {
	path, err := cache.DefaultPath()
	if err != nil {
		return nil
	}
	c, err := cache.Open(ctx, path)
	if err != nil {
		return nil
	}
	defer c.Close()
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		return nil
	}
	return tasks
}

func cacheNews(ctx context.Context, posts []model.NewsPost) {
	path, err := cache.DefaultPath()
	if err != nil {
		return
	}
	c, err := cache.Open(ctx, path)
	if err != nil {
		return
	}
	defer c.Close()
	_ = c.PutNews(ctx, posts)
}

func cachedNews(ctx context.Context) []model.NewsPost {
	path, err := cache.DefaultPath()
	if err != nil {
		return nil
	}
	c, err := cache.Open(ctx, path)
	if err != nil {
		return nil
	}
	defer c.Close()
	posts, err := c.ListNews(ctx)
	if err != nil {
		return nil
	}
	return posts
}
