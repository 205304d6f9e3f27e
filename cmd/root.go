package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"pisetup/internal/logger"
)

// debug toggles diagnostic console output via the `--debug` flag.
var debug bool

// configPath is the YAML configuration file; missing file means built-in defaults.
var configPath string

// logFilePath overrides the config's log file location when set.
var logFilePath string

// rootCmd is the base command for the `pisetup` CLI.
var rootCmd = &cobra.Command{
	Use:   "pisetup",
	Short: "Raspberry Pi provisioning tool",
	Long: "pisetup provisions a Raspberry Pi class board in named operation groups\n" +
		"(system update, essential packages, board configuration, monitoring,\n" +
		"network tools, database, GPS), reporting per-group success, partial or\n" +
		"failure outcomes and logging every command to an append-only log file.",

	// Initialize the console logger before any subcommand runs.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	// Bare invocation opens the interactive menu, same as `pisetup provision`.
	Run: func(cmd *cobra.Command, args []string) {
		runInteractive()
	},
}

// Execute registers flags and subcommands and runs the CLI. Precondition
// failures exit with status 1; a normal or user-chosen exit returns 0.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "pisetup.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logFilePath, "log-file", "", "Override log file path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
