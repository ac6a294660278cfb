package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Calendar commands",
	}
	cmd.AddCommand(newEventsListCmd(app))
	return cmd
}

func newEventsListCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming calendar events",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			from := time.Now()
			to := from.AddDate(0, 0, days)
			events, err := client.ListEvents(cmd.Context(), from, to)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": events})
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "How many days ahead to include")
	return cmd
}
