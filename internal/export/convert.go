package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gorewood/doxy2json/internal/output"
	"github.com/gorewood/doxy2json/internal/xmljson"
)

// Default output locations, relative to the working directory.
const (
	DefaultAPIDir   = "api"
	DefaultDataRoot = "_data"
)

// dirPerm is the mode of created output directories.
const dirPerm = 0o755

// Converter turns Doxygen XML files into data files and stub pages.
type Converter struct {
	Decoder *xmljson.Decoder
	// Root is the site directory the output locations are relative to.
	// Empty means the working directory.
	Root     string
	APIDir   string
	DataRoot string
	Layout   string
	// Progress, when set, receives each path before it is written.
	Progress func(path string)
}

// Result lists the artifacts written for one XML file.
type Result struct {
	Source   string `json:"source"`
	DataFile string `json:"data_file"`
	Page     string `json:"page"`
}

// NewConverter returns a Converter with the default output locations.
func NewConverter(dec *xmljson.Decoder) *Converter {
	return &Converter{
		Decoder:  dec,
		APIDir:   DefaultAPIDir,
		DataRoot: DefaultDataRoot,
		Layout:   DefaultLayout,
	}
}

// DataDir returns the directory receiving data files for version.
func (c *Converter) DataDir(version string) string {
	return filepath.Join(c.Root, c.DataRoot, c.APIDir, version)
}

// PageDir returns the directory receiving stub pages for version.
func (c *Converter) PageDir(version string) string {
	return filepath.Join(c.Root, c.APIDir, version)
}

// Convert decodes xmlPath and writes its data file and stub page for version.
func (c *Converter) Convert(xmlPath, version string) (Result, error) {
	dataDir := c.DataDir(version)
	pageDir := c.PageDir(version)
	for _, dir := range []string{dataDir, pageDir} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return Result{}, output.NewSystemErrorWithCause(fmt.Sprintf("failed to create directory %s: %v", dir, err), err)
		}
	}

	tree, err := c.Decoder.DecodeFile(xmlPath)
	if err != nil {
		return Result{}, output.NewSystemErrorWithCause(err.Error(), err)
	}
	tree = xmljson.SiteFixup(tree)

	result := Result{Source: xmlPath}

	c.report(filepath.Join(dataDir, DataFileName(xmlPath)))
	result.DataFile, err = WriteDataFile(dataDir, DataFileName(xmlPath), tree)
	if err != nil {
		return Result{}, err
	}

	stub, err := PageStub(c.Layout)
	if err != nil {
		return Result{}, output.NewSystemErrorWithCause(fmt.Sprintf("failed to render page: %v", err), err)
	}
	c.report(filepath.Join(pageDir, PageFileName(xmlPath)))
	result.Page, err = WritePage(pageDir, PageFileName(xmlPath), stub)
	if err != nil {
		return Result{}, err
	}
	return result, nil
}

func (c *Converter) report(path string) {
	if c.Progress != nil {
		c.Progress(path)
	}
}
