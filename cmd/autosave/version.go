package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/autosave"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of autosave",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "autosave version %s\n", strings.TrimSpace(autosave.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
