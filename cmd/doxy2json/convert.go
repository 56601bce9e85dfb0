package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/doxy2json/internal/export"
	"github.com/gorewood/doxy2json/internal/generate"
	"github.com/gorewood/doxy2json/internal/output"
)

// newConvertCmd creates the convert command.
func newConvertCmd(flags *buildFlags) *cobra.Command {
	var versionFlag string

	cmd := &cobra.Command{
		Use:   "convert <file.xml>...",
		Short: "Convert individual Doxygen XML files",
		Long: `Convert individual Doxygen compound XML files into a JSON data file and a
Markdown stub page each, without running doxygen or touching the index.

Examples:
  doxy2json convert xml/classfoo.xml --version 1.0
  doxy2json convert xml/*.xml --version develop --api-dir reference`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, flags, versionFlag, args)
		},
	}

	cmd.Flags().StringVar(&versionFlag, "version", "", "Version directory to write into (required)")
	_ = cmd.MarkFlagRequired("version")

	return cmd
}

// runConvert executes the convert command.
func runConvert(cmd *cobra.Command, flags *buildFlags, versionFlag string, files []string) error {
	printer := newPrinter(cmd)

	if versionFlag == "" {
		err := output.NewUserError("--version must not be empty")
		printer.Error(err)
		return err
	}

	opts, err := resolveOptions(cmd, flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	schema, _, err := generate.LoadSchema(opts.Schema, filepath.Dir(files[0]))
	if err != nil {
		printer.Error(err)
		return err
	}

	conv := generate.NewConverter(opts, schema, func(path string) {
		printer.Step("Generating %s...", path)
	})

	results := make([]export.Result, 0, len(files))
	for _, file := range files {
		result, err := conv.Convert(file, versionFlag)
		if err != nil {
			printer.Error(err)
			return err
		}
		results = append(results, result)
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"version": versionFlag, "files": results})
	}
	printer.Done("Converted %d XML files into version %s", len(results), versionFlag)
	return nil
}
