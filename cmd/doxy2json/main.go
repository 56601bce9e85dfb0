// Package main provides the entry point for the doxy2json CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/doxy2json/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		// Walk up to root to find the persistent flag
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// colorMode reads the --color persistent flag. Invalid values fall back to
// auto here; checkColorFlag rejects them before any command runs.
func colorMode(cmd *cobra.Command) output.ColorMode {
	flag := cmd.Root().PersistentFlags().Lookup("color")
	if flag == nil {
		return output.ColorAuto
	}
	mode, err := output.ParseColorMode(flag.Value.String())
	if err != nil {
		return output.ColorAuto
	}
	return mode
}

// useColor resolves the --color flag against TTY detection.
func useColor(cmd *cobra.Command) bool {
	return colorMode(cmd).Enabled(cmd.OutOrStdout())
}

// checkColorFlag validates --color for every command.
func checkColorFlag(cmd *cobra.Command, _ []string) error {
	flag := cmd.Root().PersistentFlags().Lookup("color")
	if flag == nil {
		return nil
	}
	if _, err := output.ParseColorMode(flag.Value.String()); err != nil {
		newPrinter(cmd).Error(err)
		return err
	}
	return nil
}

// newPrinter returns the printer every command writes through.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the doxy2json CLI.
// Run without a subcommand it performs a full documentation build.
func newRootCmd() *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "doxy2json",
		Short: "Convert Doxygen XML into JSON data and Markdown pages",
		Long: `doxy2json - Publish Doxygen API documentation on a static site.

A build:
  - Runs doxygen on the Doxyfile
  - Reads the Doxyfile to find the XML output and the project version
  - Converts every namespace, class, and file compound into
    _data/api/<version>/<name>.json and api/<version>/<name>.md
  - Rewrites api/index.md linking every documented version

Settings may also come from .doxy2json.yaml in the working directory or
config.yaml in the doxy2json config directory; flags take precedence.

Examples:
  doxy2json                          # Build from ./Doxyfile
  doxy2json -i docs/Doxyfile         # Build from another Doxyfile
  doxy2json --skip-doxygen           # Convert existing XML output only
  doxy2json --git-version --json     # Version by git tag, JSON summary`,
		Version:       buildVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags)
		},
	}

	cmd.PersistentPreRunE = checkColorFlag

	// Persistent output flags (available to all subcommands)
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Colorize output: never, always, or auto")

	flags.register(cmd)

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	// Define command groups and add commands
	addCommandGroups(cmd)
	addCommands(cmd, flags)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "build", Title: "Build Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspect Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command, flags *buildFlags) {
	addGroupedCommand(cmd, newConvertCmd(flags), "build")
	addGroupedCommand(cmd, newIndexCmd(flags), "build")

	addGroupedCommand(cmd, newDoxyfileCmd(flags), "inspect")

	addGroupedCommand(cmd, newServeCmd(flags), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
