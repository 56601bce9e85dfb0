package doxyfile

import (
	"encoding/json"
	"path/filepath"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Well-known normalized keys.
const (
	KeyVersion         = "version"
	KeyProjectName     = "project_name"
	KeyProjectNumber   = "project_number"
	KeyOutputDirectory = "output_directory"
	KeyXMLOutput       = "xml_output"
	KeyGenerateXML     = "generate_xml"
)

// DefaultXMLOutput is the directory Doxygen writes XML into when XML_OUTPUT is unset.
const DefaultXMLOutput = "xml"

// Value is a configuration value: a single string or a list of strings.
type Value struct {
	Scalar string
	Items  []string
	IsList bool
}

// String returns the scalar, or the list items joined by a space.
func (v Value) String() string {
	if v.IsList {
		return strings.Join(v.Items, " ")
	}
	return v.Scalar
}

// MarshalJSON encodes scalars as strings and lists as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsList {
		return json.Marshal(v.Items)
	}
	return json.Marshal(v.Scalar)
}

// Config holds parsed Doxyfile entries in the order they first appeared.
type Config struct {
	entries *orderedmap.OrderedMap[string, Value]
}

func newConfig() *Config {
	return &Config{entries: orderedmap.New[string, Value]()}
}

// put stores value under key. A repeated key keeps its first position.
func (c *Config) put(key string, value Value) {
	c.entries.Set(key, value)
}

func (c *Config) set(key, value string) {
	c.put(key, Value{Scalar: value})
}

func (c *Config) setList(key string, items []string) {
	if len(items) == 0 {
		return
	}
	c.put(key, Value{Items: items, IsList: true})
}

// Len returns the number of entries.
func (c *Config) Len() int {
	return c.entries.Len()
}

// Keys returns the entry keys in file order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, c.entries.Len())
	for pair := c.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Value returns the raw value stored under key.
func (c *Config) Value(key string) (Value, bool) {
	return c.entries.Get(key)
}

// Get returns the value under key as a string.
// Lists are joined with a single space.
func (c *Config) Get(key string) (string, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		return "", false
	}
	return v.String(), true
}

// GetOr returns the value under key, or fallback when the key is absent.
func (c *Config) GetOr(key, fallback string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return fallback
}

// List returns the value under key as a list.
// A scalar is returned as a one-element list.
func (c *Config) List(key string) []string {
	v, ok := c.entries.Get(key)
	if !ok {
		return nil
	}
	if !v.IsList {
		return []string{v.Scalar}
	}
	out := make([]string, len(v.Items))
	copy(out, v.Items)
	return out
}

// MarshalJSON encodes the entries as a JSON object in file order.
func (c *Config) MarshalJSON() ([]byte, error) {
	return c.entries.MarshalJSON()
}

// ProjectName returns PROJECT_NAME with surrounding quotes removed.
func (c *Config) ProjectName() string {
	return unquote(c.GetOr(KeyProjectName, ""))
}

// GeneratesXML reports whether GENERATE_XML is enabled.
func (c *Config) GeneratesXML() bool {
	v, _ := c.Get(KeyGenerateXML)
	return v == "true"
}

// ProjectNumber returns PROJECT_NUMBER with surrounding quotes removed.
func (c *Config) ProjectNumber() (string, bool) {
	v, ok := c.Get(KeyProjectNumber)
	if !ok {
		return "", false
	}
	v = unquote(v)
	return v, v != ""
}

// XMLOutputDir returns the directory Doxygen writes XML into.
// A relative XML_OUTPUT is resolved against OUTPUT_DIRECTORY when that is set.
func (c *Config) XMLOutputDir() string {
	xmlDir := unquote(c.GetOr(KeyXMLOutput, DefaultXMLOutput))
	if filepath.IsAbs(xmlDir) {
		return filepath.Clean(xmlDir)
	}
	if outDir := unquote(c.GetOr(KeyOutputDirectory, "")); outDir != "" {
		return filepath.Join(outDir, xmlDir)
	}
	return filepath.Clean(xmlDir)
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
