package cli

import (
	"context"

	"portal-cli/internal/cache"
	"portal-cli/internal/model"

	"github.com/spf13/cobra"
)

func newNewsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Company news commands",
	}
	cmd.AddCommand(newNewsListCmd(app))
	cmd.AddCommand(newNewsShowCmd(app))
	return cmd
}

func newNewsListCmd(app *App) *cobra.Command {
	var limit int
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List news posts (newest first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cached {
				posts, err := cachedNews(cmd.Context())
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": posts, "meta": map[string]any{"cached": true}})
			}

			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			posts, err := client.ListNews(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			storeNewsInCache(cmd.Context(), posts)
			return writeOut(cmd, app, map[string]any{"data": posts})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max posts to return (0 = server default)")
	cmd.Flags().BoolVar(&cached, "cached", false, "Serve the last fetched list without contacting the portal")
	return cmd
}

func newNewsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <news-id>",
		Short: "Show a news post with its body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			post, err := client.GetNews(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": post})
		},
	}
}

func storeNewsInCache(ctx context.Context, posts []model.NewsPost) {
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

func cachedNews(ctx context.Context) ([]model.NewsPost, error) {
	path, err := cache.DefaultPath()
	if err != nil {
		return nil, err
	}
	c, err := cache.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	return c.ListNews(ctx)
}
