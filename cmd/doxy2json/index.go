package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/doxy2json/internal/export"
)

// newIndexCmd creates the index command.
func newIndexCmd(flags *buildFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "index [dir]",
		Short: "Rewrite the API index page",
		Long: `Rewrite <dir>/index.md with one link per version subdirectory.

Examples:
  doxy2json index                          # Rewrite api/index.md
  doxy2json index reference --index-title Reference`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, flags, args)
		},
	}
}

// runIndex executes the index command.
func runIndex(cmd *cobra.Command, flags *buildFlags, args []string) error {
	printer := newPrinter(cmd)

	opts, err := resolveOptions(cmd, flags)
	if err != nil {
		printer.Error(err)
		return err
	}
	opts = opts.WithDefaults()

	dir := filepath.Join(opts.Root, opts.APIDir)
	if len(args) > 0 {
		dir = args[0]
	}

	path, err := export.WriteIndex(dir, opts.IndexTitle)
	if err != nil {
		printer.Error(err)
		return err
	}
	versions, err := export.Versions(dir)
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		if versions == nil {
			versions = []string{}
		}
		return printer.WriteJSON(map[string]any{"path": path, "versions": versions})
	}

	printer.Step("Generating %s...", path)
	for _, v := range versions {
		printer.Println("  - " + v)
	}
	return nil
}
