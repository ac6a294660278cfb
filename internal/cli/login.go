package cli

import (
	"errors"
	"strings"

	"portal-cli/internal/api"
	"portal-cli/internal/config"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var name string
	var urlFlag string
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Save a portal profile and verify the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			urlFlag = strings.TrimSpace(urlFlag)
			if urlFlag == "" {
				return writeErr(cmd, errors.New("--url is required"))
			}

			client := api.NewClient(urlFlag, token)
			me, err := client.Me(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}

			cfg, err := config.Load()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := cfg.SetProfile(name, config.Profile{
				BaseURL:     urlFlag,
				Token:       token,
				DisplayName: me.DisplayName,
			}); err != nil {
				return writeErr(cmd, err)
			}
			if err := config.Save(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": me, "profile": name})
		},
	}

	cmd.Flags().StringVar(&name, "name", "default", "Profile name")
	cmd.Flags().StringVar(&urlFlag, "url", "", "Portal base URL (e.g. https://intranet.example.com)")
	cmd.Flags().StringVar(&token, "token", "", "API token")
	return cmd
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := app.Client()
			if err != nil {
				return writeErr(cmd, err)
			}
			me, err := client.Me(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": me})
		},
	}
}
