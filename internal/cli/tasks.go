package cli

import (
	"context"
	"strings"

	"portal-cli/internal/cache"
	"portal-cli/internal/model"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksToggleCmd(app))
	cmd.AddCommand(newTasksStatusCmd(app))
	cmd.AddCommand(newTasksCommentCmd(app))
	cmd.AddCommand(newTasksCommentsCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var mine bool
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cached {
				tasks, err := cachedTasks(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": tasks, "meta": map[string]any{"cached": true}})
			}

			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := client.ListTasks(cmd.Context(), mine)
			if err != nil {
				return writeErr(cmd, err)
			}
			storeTasksInCache(cmd.Context(), tasks)
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}
	cmd.Flags().BoolVar(&mine, "mine", false, "Only tasks assigned to me")
	cmd.Flags().BoolVar(&cached, "cached", false, "Serve the last fetched list without contacting the portal")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task with checklist and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			task, err := client.FetchTask(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			storeTaskInCache(cmd.Context(), task)
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}
}

func newTasksToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <task-id> <item-id>",
		Short: "Toggle a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			taskID, itemID := args[0], args[1]

			// One-shot commands are synchronous; read the current value,
			// then write its inverse. (Optimistic apply is a TUI concern.)
			task, err := client.FetchTask(cmd.Context(), taskID)
			if err != nil {
				return writeErr(cmd, err)
			}
			var cur *model.ChecklistItem
			for i := range task.Checklist {
				if task.Checklist[i].ID == itemID {
					cur = &task.Checklist[i]
				}
			}
			if cur == nil {
				return writeErr(cmd, errNotFound("checklist item", itemID))
			}
			if err := client.SetChecklistItem(cmd.Context(), taskID, itemID, !cur.IsCompleted); err != nil {
				return writeErr(cmd, err)
			}
			cur.IsCompleted = !cur.IsCompleted
			storeTaskInCache(cmd.Context(), task)
			return writeOut(cmd, app, map[string]any{"data": cur})
		},
	}
}

func newTasksStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <task-id> <status>",
		Short: "Change a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			taskID, status := args[0], strings.TrimSpace(args[1])
			if err := client.SetTaskStatus(cmd.Context(), taskID, status); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": taskID, "status": status}})
		},
	}
}

func newTasksCommentCmd(app *App) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   "comment <task-id>",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := client.CreateComment(cmd.Context(), args[0], strings.TrimSpace(text))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id}})
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "Comment text")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

func newTasksCommentsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "comments <task-id>",
		Short: "List a task's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			comments, err := client.ListComments(cmd.Context(), args[0], limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": comments})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of comments (0 = all)")
	return cmd
}

// Cache writes are best-effort; a broken local cache must never fail a
// command that already succeeded against the portal.
func storeTaskInCache(ctx context.Context, task model.Task) {
	path, err := cache.DefaultPath()
	if err != nil {
		return
	}
	c, err := cache.Open(ctx, path)
	if err != nil {
		return
	}
	defer c.Close()
	_ = c.PutTask(ctx, task)
}

func storeTasksInCache(ctx context.Context, tasks []model.Task) {
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

func cachedTasks(ctx context.Context) ([]model.Task, error) {
	path, err := cache.DefaultPath()
	if err != nil {
		return nil, err
	}
	c, err := cache.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.ListTasks(ctx)
}
