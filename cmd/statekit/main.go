// Package main is the entry point for the statekit CLI.
//
// Usage:
//
//	statekit run                      # Start the TUI
//	statekit run --poll 5 --debug     # Poll every 5s, log at debug level
//	statekit config                   # Print the effective configuration
//	statekit version                  # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "statekit",
	Short: "A terminal dashboard driven by a single state store",
	Long: `statekit tails a log file (and optionally a remote JSON document) into a
single state store and renders it in the terminal. Every panel subscribes to
the slice of state it shows and redraws only when that slice changes.

Quick start:
  1. Run: statekit run
  2. Press + and - to dispatch, T to cycle themes, s to swap stores
  3. Add debug_addr to the config to inspect /state and /metrics`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "statekit %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
