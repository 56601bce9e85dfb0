package generate

import (
	"io"

	"github.com/gorewood/doxy2json/internal/doxygen"
	"github.com/gorewood/doxy2json/internal/export"
)

// Defaults for Options fields left empty.
const (
	DefaultDoxyfile = "./Doxyfile"
	DefaultVersion  = "develop"
)

// DefaultPatterns select the compound files worth publishing: namespaces,
// classes, and files (Doxygen encodes "." as "_8" in file compound names).
var DefaultPatterns = []string{"namespace", "class", "_8"}

// Options configures a build.
type Options struct {
	Doxyfile string
	Doxygen  string
	// Schema is an XSD file; empty selects <xmldir>/compound.xsd when
	// present, else the embedded schema.
	Schema         string
	Root           string
	APIDir         string
	DataRoot       string
	Layout         string
	IndexTitle     string
	DefaultVersion string
	Patterns       []string

	SkipDoxygen bool
	GitVersion  bool
	CleanXML    bool

	// Doxygen output is forwarded here; nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultOptions returns the options of a plain doxy2json run.
func DefaultOptions() Options {
	return Options{}.WithDefaults()
}

// WithDefaults returns o with every empty field set to its default.
func (o Options) WithDefaults() Options {
	if o.Doxyfile == "" {
		o.Doxyfile = DefaultDoxyfile
	}
	if o.Doxygen == "" {
		o.Doxygen = doxygen.DefaultBinary
	}
	if o.APIDir == "" {
		o.APIDir = export.DefaultAPIDir
	}
	if o.DataRoot == "" {
		o.DataRoot = export.DefaultDataRoot
	}
	if o.Layout == "" {
		o.Layout = export.DefaultLayout
	}
	if o.IndexTitle == "" {
		o.IndexTitle = export.DefaultIndexTitle
	}
	if o.DefaultVersion == "" {
		o.DefaultVersion = DefaultVersion
	}
	if len(o.Patterns) == 0 {
		o.Patterns = DefaultPatterns
	}
	return o
}
