package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/doxy2json/internal/output"
	"github.com/gorewood/doxy2json/internal/xmljson"
)

// filePerm is the mode of written artifacts; site generators run as other users.
const filePerm = 0o644

// baseName returns the file name of xmlPath without its .xml extension.
func baseName(xmlPath string) string {
	return strings.TrimSuffix(filepath.Base(xmlPath), ".xml")
}

// DataFileName returns the JSON data file name for an XML file.
func DataFileName(xmlPath string) string {
	return baseName(xmlPath) + ".json"
}

// WriteDataFile writes a decoded tree as indented JSON to dir/name and
// returns the written path.
func WriteDataFile(dir, name string, tree any) (string, error) {
	path := filepath.Join(dir, name)

	var buf bytes.Buffer
	if err := xmljson.Encode(&buf, tree); err != nil {
		return "", output.NewSystemErrorWithCause(fmt.Sprintf("failed to encode %s: %v", path, err), err)
	}

	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return "", output.NewSystemErrorWithCause(fmt.Sprintf("failed to write file %s: %v", path, err), err)
	}
	return path, nil
}
