package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newBookingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Meeting-room booking commands",
	}
	cmd.AddCommand(newBookingsListCmd(app))
	cmd.AddCommand(newBookingsAddCmd(app))
	cmd.AddCommand(newBookingsRoomsCmd(app))
	return cmd
}

func newBookingsRoomsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List bookable rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			rooms, err := client.ListRooms(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rooms})
		},
	}
}

func newBookingsListCmd(app *App) *cobra.Command {
	var room string
	var day string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			var d time.Time
			if strings.TrimSpace(day) != "" {
				d, err = time.Parse("2006-01-02", day)
				if err != nil {
					return writeErr(cmd, errors.New("--day must be YYYY-MM-DD"))
				}
			}
			bookings, err := client.ListBookings(cmd.Context(), room, d)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": bookings})
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "Filter by room id")
	cmd.Flags().StringVar(&day, "day", "", "Filter by day (YYYY-MM-DD)")
	return cmd
}

func newBookingsAddCmd(app *App) *cobra.Command {
	var room string
	var title string
	var from string
	var to string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a room",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			startsAt, err := time.Parse(time.RFC3339, from)
			if err != nil {
				return writeErr(cmd, errors.New("--from must be RFC3339, e.g. 2026-03-02T09:00:00+07:00"))
			}
			endsAt, err := time.Parse(time.RFC3339, to)
			if err != nil {
				return writeErr(cmd, errors.New("--to must be RFC3339"))
			}
			if !endsAt.After(startsAt) {
				return writeErr(cmd, errors.New("--to must be after --from"))
			}
			b, err := client.CreateBooking(cmd.Context(), room, strings.TrimSpace(title), startsAt, endsAt)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": b})
		},
	}
	cmd.Flags().StringVar(&room, "room", "", "Room id")
	cmd.Flags().StringVar(&title, "title", "", "Booking title")
	cmd.Flags().StringVar(&from, "from", "", "Start time (RFC3339)")
	cmd.Flags().StringVar(&to, "to", "", "End time (RFC3339)")
	_ = cmd.MarkFlagRequired("room")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
