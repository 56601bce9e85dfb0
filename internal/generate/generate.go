package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/doxy2json/internal/doxyfile"
	"github.com/gorewood/doxy2json/internal/doxygen"
	"github.com/gorewood/doxy2json/internal/export"
	"github.com/gorewood/doxy2json/internal/git"
	"github.com/gorewood/doxy2json/internal/output"
	"github.com/gorewood/doxy2json/internal/xmljson"
	"github.com/gorewood/doxy2json/internal/xsd"
)

// SchemaFileName is the schema Doxygen writes next to its XML output.
const SchemaFileName = "compound.xsd"

// EmbeddedSchema is reported as the schema source when no file is used.
const EmbeddedSchema = "embedded"

// Summary describes a finished build.
type Summary struct {
	Version string          `json:"version"`
	XMLDir  string          `json:"xml_dir"`
	Schema  string          `json:"schema"`
	Files   []export.Result `json:"files"`
	Index   string          `json:"index"`
	Cleaned bool            `json:"cleaned,omitempty"`
}

// Run performs a build. progress, when non-nil, receives every path before
// it is written.
func Run(ctx context.Context, opts Options, progress func(path string)) (Summary, error) {
	opts = opts.WithDefaults()

	if _, err := os.Stat(opts.Doxyfile); err != nil {
		return Summary{}, output.NewUserErrorWithCause(
			fmt.Sprintf("No such file or directory: '%s'", opts.Doxyfile), err)
	}

	if !opts.SkipDoxygen {
		if err := doxygen.Run(ctx, opts.Doxygen, opts.Doxyfile, opts.Stdout, opts.Stderr); err != nil {
			return Summary{}, err
		}
	}

	cfg, err := doxyfile.Load(opts.Doxyfile)
	if err != nil {
		return Summary{}, output.NewSystemErrorWithCause(err.Error(), err)
	}

	summary := Summary{XMLDir: cfg.XMLOutputDir()}

	summary.Version, err = Version(ctx, cfg, opts)
	if err != nil {
		return Summary{}, err
	}

	files, err := XMLFiles(summary.XMLDir, opts.Patterns)
	if errors.Is(err, fs.ErrNotExist) && !cfg.GeneratesXML() {
		return Summary{}, output.NewUserErrorWithCause(
			fmt.Sprintf("XML output directory '%s' not found: set GENERATE_XML = YES in %s", summary.XMLDir, opts.Doxyfile), err)
	}
	if err != nil {
		return Summary{}, err
	}

	schema, source, err := LoadSchema(opts.Schema, summary.XMLDir)
	if err != nil {
		return Summary{}, err
	}
	summary.Schema = source

	conv := NewConverter(opts, schema, progress)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		result, err := conv.Convert(file, summary.Version)
		if err != nil {
			return Summary{}, err
		}
		summary.Files = append(summary.Files, result)
	}

	apiDir := filepath.Join(opts.Root, opts.APIDir)
	if err := os.MkdirAll(apiDir, 0o755); err != nil {
		return Summary{}, output.NewSystemErrorWithCause(fmt.Sprintf("failed to create directory %s: %v", apiDir, err), err)
	}
	summary.Index, err = export.WriteIndex(apiDir, opts.IndexTitle)
	if err != nil {
		return Summary{}, err
	}

	if opts.CleanXML {
		if err := os.RemoveAll(summary.XMLDir); err != nil {
			return Summary{}, output.NewSystemErrorWithCause(
				fmt.Sprintf("failed to remove %s: %v", summary.XMLDir, err), err)
		}
		summary.Cleaned = true
	}
	return summary, nil
}

// NewConverter returns a converter writing to the locations in opts.
func NewConverter(opts Options, schema *xsd.Schema, progress func(path string)) *export.Converter {
	opts = opts.WithDefaults()
	conv := export.NewConverter(xmljson.NewDecoder(schema))
	conv.Root = opts.Root
	conv.APIDir = opts.APIDir
	conv.DataRoot = opts.DataRoot
	conv.Layout = opts.Layout
	conv.Progress = progress
	return conv
}

// Version picks the version directory for a build: the Git tag at HEAD when
// GitVersion is set, else the Doxyfile's PROJECT_NUMBER, else the default.
func Version(ctx context.Context, cfg *doxyfile.Config, opts Options) (string, error) {
	opts = opts.WithDefaults()
	if opts.GitVersion {
		return git.Repo{Dir: filepath.Dir(opts.Doxyfile)}.TagVersion(ctx, opts.DefaultVersion)
	}
	if v, ok := cfg.ProjectNumber(); ok {
		return v, nil
	}
	return opts.DefaultVersion, nil
}

// Matches reports whether name contains any of patterns.
func Matches(name string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// XMLFiles returns the regular .xml files in dir whose names match patterns,
// in name order.
func XMLFiles(dir string, patterns []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, output.NewUserErrorWithCause(
				fmt.Sprintf("XML output directory '%s' not found; is GENERATE_XML enabled?", dir), err)
		}
		return nil, output.NewSystemErrorWithCause(fmt.Sprintf("failed to read directory %s: %v", dir, err), err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || filepath.Ext(name) != ".xml" {
			continue
		}
		if Matches(strings.TrimSuffix(name, ".xml"), patterns) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// LoadSchema returns the schema used to decode the XML in xmlDir and a
// description of where it came from.
func LoadSchema(path, xmlDir string) (*xsd.Schema, string, error) {
	if path == "" {
		candidate := filepath.Join(xmlDir, SchemaFileName)
		if _, err := os.Stat(candidate); err != nil {
			schema, err := xsd.Default()
			if err != nil {
				return nil, "", output.NewSystemErrorWithCause(err.Error(), err)
			}
			return schema, EmbeddedSchema, nil
		}
		path = candidate
	}

	schema, err := xsd.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", output.NewUserErrorWithCause(fmt.Sprintf("No such file or directory: '%s'", path), err)
	}
	if err != nil {
		return nil, "", output.NewSystemErrorWithCause(err.Error(), err)
	}
	return schema, path, nil
}
