package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newForumCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forum",
		Short: "Forum commands",
	}
	cmd.AddCommand(newForumListCmd(app))
	cmd.AddCommand(newForumShowCmd(app))
	cmd.AddCommand(newForumReplyCmd(app))
	return cmd
}

func newForumListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List forum threads (most recent activity first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			threads, err := client.ListThreads(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": threads})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max threads to return (0 = server default)")
	return cmd
}

func newForumShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <thread-id>",
		Short: "Show a thread with replies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			thread, err := client.GetThread(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": thread})
		},
	}
}

func newForumReplyCmd(app *App) *cobra.Command {
	var body string

	cmd := &cobra.Command{
		Use:   "reply <thread-id>",
		Short: "Reply to a thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			reply, err := client.CreateReply(cmd.Context(), args[0], strings.TrimSpace(body))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": reply})
		},
	}
	cmd.Flags().StringVar(&body, "body", "", "Reply body")
	_ = cmd.MarkFlagRequired("body")
	return cmd
}
