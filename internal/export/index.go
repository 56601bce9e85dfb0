package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorewood/doxy2json/internal/output"
)

// IndexFileName is the name of the generated API index page.
const IndexFileName = "index.md"

// DefaultIndexTitle is the title of the API index page.
const DefaultIndexTitle = "API"

// Versions returns the names of the immediate subdirectories of dir in
// alphabetical order.
func Versions(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, output.NewUserError(fmt.Sprintf("'%s' doesn't exist or is not a directory", dir))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, output.NewSystemErrorWithCause(fmt.Sprintf("failed to read directory %s: %v", dir, err), err)
	}

	var versions []string
	for _, entry := range entries {
		if isDir(dir, entry) {
			versions = append(versions, entry.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// isDir reports whether entry is a directory, following symlinks.
func isDir(dir string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.IsDir()
}

// IndexPage renders the index page linking each version directory.
func IndexPage(title string, versions []string) (string, error) {
	fm := &FrontMatter{}
	header, err := fm.String("title", title).Render()
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString(header)
	for _, v := range versions {
		fmt.Fprintf(&builder, "- [%s](%s)\n", v, v)
	}
	return builder.String(), nil
}

// WriteIndex writes dir/index.md listing the version subdirectories of dir
// and returns the written path.
func WriteIndex(dir, title string) (string, error) {
	versions, err := Versions(dir)
	if err != nil {
		return "", err
	}

	content, err := IndexPage(title, versions)
	if err != nil {
		return "", output.NewSystemErrorWithCause(fmt.Sprintf("failed to render index: %v", err), err)
	}
	return WritePage(dir, IndexFileName, content)
}
