package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the settings file looked up in the working directory.
const ProjectFile = ".doxy2json.yaml"

// GlobalFile is the settings file name inside Dir().
const GlobalFile = "config.yaml"

// Settings holds values read from a settings file.
// Zero values mean "not set"; callers apply their own defaults.
type Settings struct {
	Doxyfile       string   `yaml:"doxyfile"`
	Doxygen        string   `yaml:"doxygen"`
	Schema         string   `yaml:"schema"`
	APIDir         string   `yaml:"api_dir"`
	DataDir        string   `yaml:"data_dir"`
	Layout         string   `yaml:"layout"`
	IndexTitle     string   `yaml:"index_title"`
	DefaultVersion string   `yaml:"default_version"`
	Patterns       []string `yaml:"patterns"`
	GitVersion     bool     `yaml:"git_version"`
	CleanXML       bool     `yaml:"clean_xml"`

	// Source is the file the settings came from, empty if none was found.
	Source string `yaml:"-"`
}

// Load reads settings from the first file of SearchPath that exists.
func Load() (Settings, error) {
	for _, path := range SearchPath() {
		settings, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return settings, err
	}
	return Settings{}, nil
}

// LoadFile reads settings from path. Unknown keys are rejected.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var settings Settings
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&settings); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("invalid settings in %s: %w", path, err)
	}

	settings.Source = path
	return settings, nil
}
