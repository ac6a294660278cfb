package cli

import (
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat commands",
	}
	cmd.AddCommand(newChatHistoryCmd(app))
	return cmd
}

func newChatHistoryCmd(app *App) *cobra.Command {
	var channel string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent messages from a chat channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			msgs, err := client.ChatHistory(cmd.Context(), channel, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": msgs})
		},
	}
	cmd.Flags().StringVar(&channel, "channel", "", "Channel id")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of messages")
	_ = cmd.MarkFlagRequired("channel")
	return cmd
}
