package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/doxy2json/internal/config"
	"github.com/gorewood/doxy2json/internal/doxygen"
	"github.com/gorewood/doxy2json/internal/export"
	"github.com/gorewood/doxy2json/internal/generate"
	"github.com/gorewood/doxy2json/internal/output"
)

// buildFlags holds the root command's build flags.
type buildFlags struct {
	doxyfile       string
	doxygen        string
	schema         string
	root           string
	apiDir         string
	dataDir        string
	layout         string
	indexTitle     string
	defaultVersion string
	patterns       []string
	skipDoxygen    bool
	gitVersion     bool
	cleanXML       bool
}

// register adds the build flags to root. Site location flags are persistent
// so convert, index, and serve write to the same places.
func (f *buildFlags) register(root *cobra.Command) {
	site := root.PersistentFlags()
	site.StringVar(&f.schema, "schema", "", "XSD schema (default: compound.xsd in the XML output, else built in)")
	site.StringVar(&f.root, "root", "", "Site directory receiving the output (default: working directory)")
	site.StringVar(&f.apiDir, "api-dir", export.DefaultAPIDir, "API page directory")
	site.StringVar(&f.dataDir, "data-dir", export.DefaultDataRoot, "Data root directory")
	site.StringVar(&f.layout, "layout", export.DefaultLayout, "Site layout named in each page")
	site.StringVar(&f.indexTitle, "index-title", export.DefaultIndexTitle, "Title of the API index page")

	build := root.Flags()
	build.StringVarP(&f.doxyfile, "input", "i", generate.DefaultDoxyfile, "Doxyfile to build from")
	build.StringVar(&f.doxygen, "doxygen", doxygen.DefaultBinary, "Doxygen executable")
	build.StringVar(&f.defaultVersion, "default-version", generate.DefaultVersion,
		"Version used when the Doxyfile has no PROJECT_NUMBER")
	build.StringSliceVar(&f.patterns, "pattern", generate.DefaultPatterns,
		"Convert XML files whose name contains one of these")
	build.BoolVar(&f.skipDoxygen, "skip-doxygen", false, "Convert existing XML output without running doxygen")
	build.BoolVar(&f.gitVersion, "git-version", false, "Use the git tag at HEAD as the version")
	build.BoolVar(&f.cleanXML, "clean-xml", false, "Remove the XML output after converting")
}

// resolveOptions layers flags over the settings file over defaults.
func resolveOptions(cmd *cobra.Command, f *buildFlags) (generate.Options, error) {
	settings, err := config.Load()
	if err != nil {
		return generate.Options{}, output.NewUserErrorWithCause(err.Error(), err)
	}

	opts := generate.Options{
		Doxyfile:       settings.Doxyfile,
		Doxygen:        settings.Doxygen,
		Schema:         settings.Schema,
		APIDir:         settings.APIDir,
		DataRoot:       settings.DataDir,
		Layout:         settings.Layout,
		IndexTitle:     settings.IndexTitle,
		DefaultVersion: settings.DefaultVersion,
		Patterns:       settings.Patterns,
		GitVersion:     settings.GitVersion,
		CleanXML:       settings.CleanXML,
	}

	changed := cmd.Flags().Changed
	overrideString(&opts.Doxyfile, f.doxyfile, changed("input"))
	overrideString(&opts.Doxygen, f.doxygen, changed("doxygen"))
	overrideString(&opts.Schema, f.schema, changed("schema"))
	overrideString(&opts.Root, f.root, changed("root"))
	overrideString(&opts.APIDir, f.apiDir, changed("api-dir"))
	overrideString(&opts.DataRoot, f.dataDir, changed("data-dir"))
	overrideString(&opts.Layout, f.layout, changed("layout"))
	overrideString(&opts.IndexTitle, f.indexTitle, changed("index-title"))
	overrideString(&opts.DefaultVersion, f.defaultVersion, changed("default-version"))
	if changed("pattern") {
		opts.Patterns = f.patterns
	}
	if changed("git-version") {
		opts.GitVersion = f.gitVersion
	}
	if changed("clean-xml") {
		opts.CleanXML = f.cleanXML
	}
	opts.SkipDoxygen = f.skipDoxygen
	return opts, nil
}

func overrideString(dst *string, value string, changed bool) {
	if changed {
		*dst = value
	}
}

// runBuild performs a full documentation build.
func runBuild(cmd *cobra.Command, f *buildFlags) error {
	printer := newPrinter(cmd)

	opts, err := resolveOptions(cmd, f)
	if err != nil {
		printer.Error(err)
		return err
	}

	// Doxygen's own output would corrupt the JSON summary.
	opts.Stdout = cmd.OutOrStdout()
	if printer.IsJSON() {
		opts.Stdout = cmd.ErrOrStderr()
	}
	opts.Stderr = cmd.ErrOrStderr()

	summary, err := generate.Run(cmd.Context(), opts, func(path string) {
		printer.Step("Generating %s...", path)
	})
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(summary)
	}

	if len(summary.Files) == 0 {
		printer.Warn("no XML files in %s matched %s", summary.XMLDir, strings.Join(opts.WithDefaults().Patterns, ", "))
	}

	printer.Section("Summary")
	printer.KeyValue("Version", summary.Version)
	printer.KeyValue("XML", summary.XMLDir)
	printer.KeyValue("Schema", summary.Schema)
	printer.KeyValue("Index", summary.Index)
	if summary.Cleaned {
		printer.KeyValue("Removed", summary.XMLDir)
	}
	printer.Done("Converted %d XML files", len(summary.Files))
	return nil
}
