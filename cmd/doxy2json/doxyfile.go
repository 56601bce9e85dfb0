package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/gorewood/doxy2json/internal/doxyfile"
	"github.com/gorewood/doxy2json/internal/output"
)

// newDoxyfileCmd creates the doxyfile command.
func newDoxyfileCmd(flags *buildFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doxyfile [path]",
		Short: "Show the settings parsed from a Doxyfile",
		Long: `Show the settings parsed from a Doxyfile.

Keys are lowercased, YES/NO become true/false, and backslash-continued
values become lists. The "version" key holds the Doxygen version from the
file's header line.

Examples:
  doxy2json doxyfile                  # Parse ./Doxyfile
  doxy2json doxyfile docs/Doxyfile    # Parse another Doxyfile
  doxy2json doxyfile --json           # Settings as a JSON object`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoxyfile(cmd, flags, args)
		},
	}
}

// runDoxyfile executes the doxyfile command.
func runDoxyfile(cmd *cobra.Command, flags *buildFlags, args []string) error {
	printer := newPrinter(cmd)

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		opts, err := resolveOptions(cmd, flags)
		if err != nil {
			printer.Error(err)
			return err
		}
		path = opts.WithDefaults().Doxyfile
	}

	cfg, err := doxyfile.Load(path)
	if err != nil {
		err = doxyfileError(path, err)
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(cfg)
	}

	rows := make([][]string, 0, cfg.Len())
	for _, key := range cfg.Keys() {
		value, _ := cfg.Value(key)
		rows = append(rows, []string{key, value.String()})
	}
	printer.Table([]string{"KEY", "VALUE"}, rows)
	printer.Println()
	if name := cfg.ProjectName(); name != "" {
		printer.KeyValue("Project", name)
	}
	printer.KeyValue("XML output", cfg.XMLOutputDir())
	return nil
}

// doxyfileError classifies a Doxyfile load failure.
func doxyfileError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return output.NewUserErrorWithCause(fmt.Sprintf("No such file or directory: '%s'", path), err)
	}
	return output.NewSystemErrorWithCause(err.Error(), err)
}
