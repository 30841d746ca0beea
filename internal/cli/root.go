// Package cli implements the kintai commands.
package cli

import (
	"github.com/spf13/cobra"

	"kintai/internal/logging"
	"kintai/internal/storage"
)

// AppName names the settings directory and the single-instance lock.
const AppName = "Kintai"

type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "kintai",
		Short: "Menu-bar attendance toggle",
		Long: `Kintai sits in the system tray and toggles between working and on-break.
Each transition is posted to the configured webhook.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(opts.logFormat, opts.logLevel, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.settingsPath()
			if err != nil {
				return err
			}
			return runTray(path)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "settings file (default <user config dir>/Kintai/settings.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")

	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newSendCmd(opts))
	return rootCmd
}

func (opts *rootOptions) settingsPath() (string, error) {
	if opts.configPath != "" {
		return opts.configPath, nil
	}
	return storage.ResolvePath(AppName)
}
