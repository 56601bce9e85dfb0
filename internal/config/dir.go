// Package config reads the optional doxy2json settings file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the per-user configuration directory.
const appName = "doxy2json"

// Dir returns the per-user configuration directory, or "" when no home
// directory can be found. The first of these wins:
// $DOXY2JSON_CONFIG_HOME, $XDG_CONFIG_HOME/doxy2json,
// %AppData%/doxy2json (Windows), ~/.config/doxy2json.
func Dir() string {
	if dir := os.Getenv("DOXY2JSON_CONFIG_HOME"); dir != "" {
		return dir
	}
	bases := []string{os.Getenv("XDG_CONFIG_HOME")}
	if runtime.GOOS == "windows" {
		bases = append(bases, os.Getenv("APPDATA"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		bases = append(bases, filepath.Join(home, ".config"))
	}
	for _, base := range bases {
		if base != "" {
			return filepath.Join(base, appName)
		}
	}
	return ""
}

// SearchPath lists the settings files Load tries, in order.
func SearchPath() []string {
	paths := []string{ProjectFile}
	if dir := Dir(); dir != "" {
		paths = append(paths, filepath.Join(dir, GlobalFile))
	}
	return paths
}
