package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/statekit/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Load the configuration the way "statekit run" would and print the result
as TOML, with defaults filled in and paths expanded.

Exit codes:
  0 - Config is valid
  1 - Config could not be read or is invalid

Example:
  statekit config
  statekit config -c ~/statekit.yaml > ~/.config/statekit/config.toml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringP("config", "c", "", "path to config file (default ~/.config/statekit/config.toml)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	encoded, err := cfg.Encode()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(encoded)
	return err
}
