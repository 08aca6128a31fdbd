package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/autosave/pkg/settings"
)

var (
	configFormat string
	configInit   string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Long: `Config prints the settings autosave would use from the current directory.

Use --init to write them to a new file; the format follows its extension.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		warnInvalid(store)

		if configInit != "" {
			if err := settings.Write(configInit, store.Settings()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configInit)
			return nil
		}

		data, err := settings.Marshal(configFormat, store.Settings())
		if err != nil {
			return err
		}
		if store.Path() != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "# %s\n", store.Path())
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().StringVarP(&configFormat, "format", "f", "yaml", "Output format (yaml, toml, json)")
	configCmd.Flags().StringVar(&configInit, "init", "", "Write the effective settings to this file")
	rootCmd.AddCommand(configCmd)
}
