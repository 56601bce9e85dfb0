// Package doxyfile parses Doxygen configuration files.
//
// A Doxyfile is a list of KEY = value assignments. Values that span several
// lines end each line with a backslash and are collected into a list:
//
//	INPUT = src \
//	        include
//
// The list ends at the first line without a backslash, or at a blank line.
// Keys are normalized by swapping their case, so XML_OUTPUT is stored as
// xml_output. Single values equal to YES or NO become "true" or "false".
package doxyfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// versionHeader prefixes the first line Doxygen writes into a generated Doxyfile.
const versionHeader = "# Doxyfile "

// Load reads and parses the Doxyfile at path.
// A missing file yields an error matching fs.ErrNotExist.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening doxyfile %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // best-effort close on read-only file

	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("reading doxyfile %s: %w", path, err)
	}
	return cfg, nil
}

// Parse reads Doxyfile content from r.
func Parse(r io.Reader) (*Config, error) {
	cfg := newConfig()
	scanner := bufio.NewScanner(r)

	var (
		listKey string
		list    []string
		inList  bool
		first   = true
	)

	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			if rest, ok := strings.CutPrefix(line, versionHeader); ok {
				line = "VERSION=" + rest
			}
		}

		if strings.HasPrefix(line, "#") {
			continue
		}
		if strings.TrimSpace(line) == "" {
			// A blank line ends a list left open by a trailing backslash.
			if inList {
				cfg.setList(listKey, list)
				listKey, list, inList = "", nil, false
			}
			continue
		}

		trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
		continued := strings.HasSuffix(trimmed, `\`)
		if continued {
			trimmed = strings.TrimSuffix(trimmed, `\`)
		}

		if inList {
			list = appendValue(list, trimmed)
			if !continued {
				cfg.setList(listKey, list)
				listKey, list, inList = "", nil, false
			}
			continue
		}

		key, value, ok := splitAssignment(trimmed)
		if !ok {
			continue
		}

		if continued {
			listKey, list, inList = key, appendValue(nil, value), true
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		cfg.set(key, translateBool(value))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	// A file ending on a continuation line still yields its list.
	if inList {
		cfg.setList(listKey, list)
	}

	return cfg, nil
}

// splitAssignment splits a KEY = value line at the first '='.
func splitAssignment(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(swapCase(key))
	if key == "" {
		return "", "", false
	}
	return key, value, true
}

// appendValue adds the trimmed element to list, dropping empty elements.
func appendValue(list []string, element string) []string {
	element = strings.TrimSpace(element)
	if element == "" {
		return list
	}
	return append(list, element)
}

// translateBool maps the Doxygen YES/NO literals to "true"/"false".
func translateBool(value string) string {
	switch value {
	case "YES":
		return "true"
	case "NO":
		return "false"
	default:
		return value
	}
}

// swapCase converts upper case letters to lower case and vice versa.
func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		default:
			return r
		}
	}, s)
}
