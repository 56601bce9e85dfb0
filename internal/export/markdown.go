package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/doxy2json/internal/output"
)

// DefaultLayout is the site layout rendering API data files.
const DefaultLayout = "doxygen"

// FrontMatter is an ordered set of YAML front matter fields.
type FrontMatter struct {
	nodes []*yaml.Node
}

// String adds a double-quoted string field.
func (f *FrontMatter) String(key, value string) *FrontMatter {
	f.nodes = append(f.nodes, keyNode(key), &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: value,
		Style: yaml.DoubleQuotedStyle,
	})
	return f
}

// Bool adds a boolean field.
func (f *FrontMatter) Bool(key string, value bool) *FrontMatter {
	f.nodes = append(f.nodes, keyNode(key), &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!bool",
		Value: fmt.Sprintf("%t", value),
	})
	return f
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

// Render returns the front matter between --- delimiters.
func (f *FrontMatter) Render() (string, error) {
	var builder strings.Builder
	builder.WriteString("---\n")

	if len(f.nodes) > 0 {
		doc := &yaml.Node{Kind: yaml.MappingNode, Content: f.nodes}
		data, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("rendering front matter: %w", err)
		}
		builder.Write(data)
	}

	builder.WriteString("---\n")
	return builder.String(), nil
}

// PageFileName returns the Markdown page name for an XML file.
func PageFileName(xmlPath string) string {
	return baseName(xmlPath) + ".md"
}

// PageStub returns the Markdown page rendering a data file with layout.
func PageStub(layout string) (string, error) {
	fm := &FrontMatter{}
	return fm.String("layout", layout).Bool("no_title_header", true).Render()
}

// WritePage writes Markdown content to dir/name and returns the written path.
func WritePage(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return "", output.NewSystemErrorWithCause(fmt.Sprintf("failed to write file %s: %v", path, err), err)
	}
	return path, nil
}
