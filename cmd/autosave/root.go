package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/autosave"
	"github.com/aretw0/autosave/internal/logging"
	"github.com/aretw0/autosave/pkg/settings"
)

var (
	verbose      bool
	logFormat    string
	logLevel     string
	settingsFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "autosave",
	Short: "Save editor documents when they lose focus",
	Long: `Autosave decides, whenever a pane or the whole editor loses focus,
which open documents should be written to disk, and writes them.

Read-only documents and documents matching an ignored pattern are skipped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevel
		if verbose {
			level = "debug"
		}
		slog.SetDefault(logging.New(logFormat, level, cmd.ErrOrStderr()))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("Error", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&settingsFile, "settings", "s", "", "Settings file (default: search .autosave.{yaml,yml,toml,json} upwards)")
}

// openSettings loads the explicit settings file, or the nearest one found from
// the working directory. Defaults are used when none exists.
func openSettings() (*settings.Store, error) {
	if settingsFile != "" {
		return settings.Open(settingsFile)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	path, err := autosave.FindSettings(wd)
	if err != nil {
		slog.Debug("no settings file found, using defaults", "dir", wd)
		return settings.Open("")
	}
	return settings.Open(path)
}

// warnInvalid logs every ignore pattern that failed to compile.
func warnInvalid(store *settings.Store) {
	for _, cerr := range store.Snapshot().Invalid() {
		slog.Warn("ignoring invalid pattern", "pattern", cerr.Pattern, "error", cerr.Err)
	}
}
