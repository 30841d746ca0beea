package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"kintai/internal/core/attendance"
	"kintai/internal/notify"
	"kintai/internal/storage"
)

func newSendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "send <status>",
		Short: "Post one status to the webhook and print the response",
		Long: `Post one status to the configured webhook and wait for the response.
The status may be a transition name (work_start, work_end, break_start,
break_end) or any literal text.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.settingsPath()
			if err != nil {
				return err
			}
			settings, err := storage.LoadSettings(path)
			if err != nil {
				return err
			}
			if settings.WebhookURL == "" {
				return fmt.Errorf("webhook_url is not set in %s", path)
			}

			webhook := notify.New(settings.NotifierConfig(), nil)
			body, err := webhook.Send(cmd.Context(), resolveStatus(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), body)
			return nil
		},
	}
}

func resolveStatus(arg string) string {
	transition := attendance.Transition(strings.ToLower(strings.TrimSpace(arg)))
	if status := transition.Status(); status != "" {
		return status
	}
	return arg
}
