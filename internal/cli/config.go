package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"kintai/internal/storage"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the settings path and effective values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.settingsPath()
			if err != nil {
				return err
			}
			settings, err := storage.LoadSettings(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path: %s\n", path)
			fmt.Fprintf(out, "name: %s\n", settings.Name)
			fmt.Fprintf(out, "webhook_url: %s\n", settings.WebhookURL)
			fmt.Fprintf(out, "request_timeout: %s\n", settings.RequestTimeout)
			fmt.Fprintf(out, "left_click_toggles: %t\n", settings.LeftClickToggles)
			return nil
		},
	}
}
