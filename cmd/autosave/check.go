package main

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/autosave"
	"github.com/aretw0/autosave/pkg/adapters/fs"
	"github.com/aretw0/autosave/pkg/core"
	"github.com/aretw0/autosave/pkg/settings"
)

var (
	checkIgnore string
	checkRegex  bool
)

var checkCmd = &cobra.Command{
	Use:   "check [paths or globs...]",
	Short: "Show what would be saved if the given files were edited",
	Long: `Check treats every matched file as an unsaved document and runs it
through the engine without writing anything.

Globs use doublestar syntax, e.g. "src/**/*.cs".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSettings()
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}

		s := store.Settings()
		if cmd.Flags().Changed("ignore") {
			s.IgnoredFileTypes = checkIgnore
		}
		if cmd.Flags().Changed("regex") {
			s.UseRegex = checkRegex
		}
		store.Update(s)

		paths, err := expand(args)
		if err != nil {
			return err
		}

		dryRun := core.SaverFunc(func(context.Context, core.Document) error { return nil })
		engine := autosave.NewEngine(autosave.WithSaver(dryRun), autosave.WithLogger(slog.Default()))
		cfg := store.Snapshot()

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, path := range paths {
			doc, err := fs.Open(path)
			if err != nil {
				fmt.Fprintf(tw, "error\t%s\t%v\n", path, err)
				continue
			}
			doc.MarkDirty()
			fmt.Fprintln(tw, checkLine(engine.ShouldSave(cmd.Context(), doc, cfg)))
		}
		return tw.Flush()
	},
}

func checkLine(d core.Decision) string {
	label := string(d.Outcome)
	if d.Saved() {
		label = "save"
	}
	line := label + "\t" + d.Path
	if d.Pattern != "" {
		line += "\t" + d.Pattern
	}
	return line
}

// expand resolves glob arguments. Plain paths pass through untouched so a
// missing file is reported rather than silently dropped.
func expand(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !hasMeta(arg) {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func hasMeta(s string) bool {
	for _, c := range s {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func init() {
	checkCmd.Flags().StringVar(&checkIgnore, "ignore", "", "Override ignored file types (separated by , ; or :)")
	checkCmd.Flags().BoolVar(&checkRegex, "regex", settings.DefaultUseRegex, "Override use_regex")
	rootCmd.AddCommand(checkCmd)
}
