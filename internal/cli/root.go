package cli

import (
	"fmt"
	"os"
	"strings"

	"portal-cli/internal/api"
	"portal-cli/internal/config"
	"portal-cli/internal/format"
	"portal-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	URL        string
	Token      string
	Profile    string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "portal",
		Short:        "Intranet portal client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  portal

  # Scriptable commands
  portal tasks list --mine
  portal tasks toggle task-84 chk-2
  portal news list --format table
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.URL, "url", envOr("PORTAL_URL", ""), "Portal base URL (overrides the active profile)")
	cmd.PersistentFlags().StringVar(&app.Token, "token", envOr("PORTAL_TOKEN", ""), "API token (overrides the active profile)")
	cmd.PersistentFlags().StringVar(&app.Profile, "profile", "", "Config profile name (default: current profile)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PORTAL_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newNewsCmd(app))
	cmd.AddCommand(newForumCmd(app))
	cmd.AddCommand(newChatCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newBookingsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	client, profile, err := app.Client()
	if err != nil {
		return err
	}
	return tui.Run(client, profile.DisplayName)
}

// Client resolves the active profile (flags > env > config file) and returns
// a ready REST client.
func (app *App) Client() (*api.Client, config.Profile, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Profile{}, err
	}
	if app.Profile != "" {
		cfg.CurrentProfile = app.Profile
	}

	p, err := cfg.Current()
	if err != nil && strings.TrimSpace(app.URL) == "" {
		return nil, config.Profile{}, err
	}
	if v := strings.TrimSpace(app.URL); v != "" {
		p.BaseURL = v
	}
	if v := strings.TrimSpace(app.Token); v != "" {
		p.Token = v
	}
	return api.NewClient(p.BaseURL, p.Token), p, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
