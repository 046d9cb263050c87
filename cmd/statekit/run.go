package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/statekit/internal/app"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the TUI",
	Long: `Start the statekit TUI.

The TUI runs until you press q or the process receives SIGINT/SIGTERM.
statekit's own logs go to log_file, never to the terminal.

Example:
  statekit run
  statekit run --config ~/statekit.yaml --poll 5`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (default ~/.config/statekit/config.toml)")
	runCmd.Flags().String("prefs", "", "path to prefs file (default ~/.config/statekit/prefs.toml)")
	runCmd.Flags().Int("poll", 0, "poll interval in seconds (overrides poll_interval)")
	runCmd.Flags().Bool("debug", false, "log at debug level")
}

func runRun(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	prefsPath, _ := cmd.Flags().GetString("prefs")
	poll, _ := cmd.Flags().GetInt("poll")
	verbose, _ := cmd.Flags().GetBool("debug")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return app.Run(ctx, app.Options{
		ConfigPath: configPath,
		PrefsPath:  prefsPath,
		PollEvery:  poll,
		Debug:      verbose,
	})
}
